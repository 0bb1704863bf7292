package impl

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"aura/internal/domain/entity"
	domainerrors "aura/internal/domain/errors"
	"aura/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubGateway is a hand-rolled service.AuthGateway with per-call hooks.
type stubGateway struct {
	mu      sync.Mutex
	session *entity.Session

	signUpFn  func(ctx context.Context, email, password string) (*entity.Session, error)
	signInFn  func(ctx context.Context, email, password string) (*entity.Session, error)
	refreshFn func(ctx context.Context, refreshToken string) (*entity.Session, error)
	signOutFn func(ctx context.Context) error
}

func (g *stubGateway) SignUp(ctx context.Context, email, password string) (*entity.Session, error) {
	return g.signUpFn(ctx, email, password)
}

func (g *stubGateway) SignInWithPassword(ctx context.Context, email, password string) (*entity.Session, error) {
	return g.signInFn(ctx, email, password)
}

func (g *stubGateway) RefreshSession(ctx context.Context, refreshToken string) (*entity.Session, error) {
	return g.refreshFn(ctx, refreshToken)
}

func (g *stubGateway) SignOut(ctx context.Context) error {
	if g.signOutFn != nil {
		return g.signOutFn(ctx)
	}

	return nil
}

func (g *stubGateway) SetSession(session *entity.Session) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.session = session
}

func (g *stubGateway) Session() *entity.Session {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.session
}

func (g *stubGateway) ClearSession() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.session = nil
}

// memStore is an in-memory repository.SessionStore.
type memStore struct {
	mu      sync.Mutex
	session *entity.Session
}

func (s *memStore) Save(session *entity.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = session

	return nil
}

func (s *memStore) Load() *entity.Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.session
}

func (s *memStore) Delete() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = nil

	return nil
}

type authFixtures struct {
	service usecase.AuthUsecase
	gateway *stubGateway
	store   *memStore
	states  *[]entity.AuthState
}

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func createTestAuthService(t *testing.T, gateway *stubGateway, store *memStore) authFixtures {
	t.Helper()

	service := NewAuthService(AuthServiceParams{
		Gateway: gateway,
		Store:   store,
		Logger:  newDiscardLogger(),
	})

	states := &[]entity.AuthState{}
	service.Subscribe(func(state entity.AuthState) {
		*states = append(*states, state)
	})

	return authFixtures{service: service, gateway: gateway, store: store, states: states}
}

func validSession() *entity.Session {
	return &entity.Session{
		AccessToken:  "access",
		RefreshToken: "refresh",
		ExpiresAt:    time.Now().Add(time.Hour),
		UserID:       uuid.New(),
		Email:        "journal@example.com",
		Metadata: map[string]string{
			entity.MetadataDisplayName: "Journal Writer",
			entity.MetadataAvatarURL:   "https://cdn.example.com/avatar.png",
		},
	}
}

func expiredSession() *entity.Session {
	session := validSession()
	session.ExpiresAt = time.Now().Add(-time.Minute)

	return session
}

func TestAuthService_InitialStateIsLoading(t *testing.T) {
	fx := createTestAuthService(t, &stubGateway{}, &memStore{})

	assert.Equal(t, entity.AuthStatusLoading, fx.service.CurrentState().Status)
}

func TestCheckAuthStatus_NoPersistedSession(t *testing.T) {
	fx := createTestAuthService(t, &stubGateway{}, &memStore{})

	require.NoError(t, fx.service.CheckAuthStatus(context.Background()))

	assert.Equal(t, entity.AuthStatusUnauthenticated, fx.service.CurrentState().Status)
}

func TestCheckAuthStatus_ValidPersistedSession(t *testing.T) {
	store := &memStore{session: validSession()}
	fx := createTestAuthService(t, &stubGateway{}, store)

	require.NoError(t, fx.service.CheckAuthStatus(context.Background()))

	assert.Equal(t, entity.AuthStatusAuthenticated, fx.service.CurrentState().Status)
	require.NotNil(t, fx.gateway.Session())
	assert.Equal(t, store.Load().UserID, fx.gateway.Session().UserID)
}

func TestCheckAuthStatus_ExpiredSessionIsRefreshed(t *testing.T) {
	fresh := validSession()
	gateway := &stubGateway{
		refreshFn: func(_ context.Context, refreshToken string) (*entity.Session, error) {
			assert.Equal(t, "refresh", refreshToken)

			return fresh, nil
		},
	}
	store := &memStore{session: expiredSession()}
	fx := createTestAuthService(t, gateway, store)

	require.NoError(t, fx.service.CheckAuthStatus(context.Background()))

	assert.Equal(t, entity.AuthStatusAuthenticated, fx.service.CurrentState().Status)
	assert.Equal(t, fresh, store.Load())
	assert.Equal(t, fresh, gateway.Session())
}

func TestCheckAuthStatus_FailedRefreshForcesReauthentication(t *testing.T) {
	gateway := &stubGateway{
		refreshFn: func(context.Context, string) (*entity.Session, error) {
			return nil, errors.WithStack(domainerrors.ErrUnauthorized)
		},
	}
	store := &memStore{session: expiredSession()}
	fx := createTestAuthService(t, gateway, store)

	require.NoError(t, fx.service.CheckAuthStatus(context.Background()))

	assert.Equal(t, entity.AuthStatusUnauthenticated, fx.service.CurrentState().Status)
	assert.Nil(t, store.Load())
	assert.Nil(t, gateway.Session())
}

func TestCheckAuthStatus_IsIdempotent(t *testing.T) {
	store := &memStore{session: validSession()}
	fx := createTestAuthService(t, &stubGateway{}, store)

	require.NoError(t, fx.service.CheckAuthStatus(context.Background()))
	first := fx.service.CurrentState()

	require.NoError(t, fx.service.CheckAuthStatus(context.Background()))
	second := fx.service.CurrentState()

	assert.Equal(t, first, second)
}

func TestSignIn_Success(t *testing.T) {
	granted := validSession()
	gateway := &stubGateway{
		signInFn: func(_ context.Context, email, password string) (*entity.Session, error) {
			assert.Equal(t, "journal@example.com", email)
			assert.Equal(t, "correct-horse", password)

			return granted, nil
		},
	}
	store := &memStore{}
	fx := createTestAuthService(t, gateway, store)

	err := fx.service.SignIn(context.Background(), &usecase.SignInInput{
		Email:    "journal@example.com",
		Password: "correct-horse",
	})

	require.NoError(t, err)
	require.Len(t, *fx.states, 2)
	assert.Equal(t, entity.AuthStatusLoading, (*fx.states)[0].Status)
	assert.Equal(t, entity.AuthStatusAuthenticated, (*fx.states)[1].Status)
	assert.Equal(t, granted, store.Load())
}

func TestSignIn_InvalidCredentials(t *testing.T) {
	gateway := &stubGateway{
		signInFn: func(context.Context, string, string) (*entity.Session, error) {
			return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "password grant")
		},
	}
	fx := createTestAuthService(t, gateway, &memStore{})

	err := fx.service.SignIn(context.Background(), &usecase.SignInInput{
		Email:    "journal@example.com",
		Password: "wrong",
	})

	require.Error(t, err)
	require.Len(t, *fx.states, 2)
	assert.Equal(t, entity.AuthStatusLoading, (*fx.states)[0].Status)
	assert.Equal(t, entity.AuthStatusError, (*fx.states)[1].Status)
	assert.NotEmpty(t, (*fx.states)[1].Message)
}

func TestSignIn_RejectsMalformedEmailBeforeRemoteCall(t *testing.T) {
	called := false
	gateway := &stubGateway{
		signInFn: func(context.Context, string, string) (*entity.Session, error) {
			called = true

			return validSession(), nil
		},
	}
	fx := createTestAuthService(t, gateway, &memStore{})

	err := fx.service.SignIn(context.Background(), &usecase.SignInInput{
		Email:    "not-an-email",
		Password: "secret",
	})

	require.Error(t, err)
	assert.False(t, called)
	assert.Equal(t, entity.AuthStatusError, fx.service.CurrentState().Status)
}

func TestSignUp_ImmediateSession(t *testing.T) {
	granted := validSession()
	gateway := &stubGateway{
		signUpFn: func(context.Context, string, string) (*entity.Session, error) {
			return granted, nil
		},
	}
	store := &memStore{}
	fx := createTestAuthService(t, gateway, store)

	err := fx.service.SignUp(context.Background(), &usecase.SignUpInput{
		Email:    "new@example.com",
		Password: "secret-password",
	})

	require.NoError(t, err)
	assert.Equal(t, entity.AuthStatusAuthenticated, fx.service.CurrentState().Status)
	assert.Equal(t, granted, store.Load())
}

func TestSignUp_ConfirmationPendingEndsUnauthenticated(t *testing.T) {
	gateway := &stubGateway{
		signUpFn: func(context.Context, string, string) (*entity.Session, error) {
			return nil, nil
		},
	}
	store := &memStore{}
	fx := createTestAuthService(t, gateway, store)

	err := fx.service.SignUp(context.Background(), &usecase.SignUpInput{
		Email:    "confirm-me@example.com",
		Password: "secret-password",
	})

	require.NoError(t, err)
	assert.Equal(t, entity.AuthStatusUnauthenticated, fx.service.CurrentState().Status)
	assert.Nil(t, store.Load())
}

func TestSignOut_ClearsLocallyEvenWhenRemoteFails(t *testing.T) {
	gateway := &stubGateway{
		signOutFn: func(context.Context) error {
			return errors.New("backend unreachable")
		},
	}
	gateway.SetSession(validSession())
	store := &memStore{session: validSession()}
	fx := createTestAuthService(t, gateway, store)

	require.NoError(t, fx.service.SignOut(context.Background()))

	assert.Equal(t, entity.AuthStatusUnauthenticated, fx.service.CurrentState().Status)
	assert.Nil(t, gateway.Session())
	assert.Nil(t, store.Load())
}

func TestHandleFederatedResult_Success(t *testing.T) {
	store := &memStore{}
	gateway := &stubGateway{}
	fx := createTestAuthService(t, gateway, store)

	granted := validSession()
	err := fx.service.HandleFederatedResult(context.Background(), &entity.FederatedResult{
		Outcome: entity.FederatedSuccess,
		Session: granted,
	})

	require.NoError(t, err)
	assert.Equal(t, entity.AuthStatusAuthenticated, fx.service.CurrentState().Status)
	assert.Equal(t, granted, store.Load())
}

func TestHandleFederatedResult_ErrorOutcomes(t *testing.T) {
	tests := []struct {
		name    string
		outcome entity.FederatedOutcome
	}{
		{name: "provider error", outcome: entity.FederatedError},
		{name: "network error", outcome: entity.FederatedNetworkError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := createTestAuthService(t, &stubGateway{}, &memStore{})

			err := fx.service.HandleFederatedResult(context.Background(), &entity.FederatedResult{
				Outcome: tt.outcome,
				Message: "identity provider rejected the request",
			})

			require.Error(t, err)
			state := fx.service.CurrentState()
			assert.Equal(t, entity.AuthStatusError, state.Status)
			assert.Equal(t, "identity provider rejected the request", state.Message)
		})
	}
}

func TestHandleFederatedResult_CancelledLeavesStateUntouched(t *testing.T) {
	fx := createTestAuthService(t, &stubGateway{}, &memStore{})

	err := fx.service.HandleFederatedResult(context.Background(), &entity.FederatedResult{
		Outcome: entity.FederatedCancelled,
	})

	require.NoError(t, err)
	assert.Empty(t, *fx.states)
	assert.Equal(t, entity.AuthStatusLoading, fx.service.CurrentState().Status)
}

func TestSignIn_RejectsOverlappingAttempt(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	gateway := &stubGateway{
		signInFn: func(context.Context, string, string) (*entity.Session, error) {
			close(started)
			<-release

			return validSession(), nil
		},
	}
	fx := createTestAuthService(t, gateway, &memStore{})

	go func() {
		_ = fx.service.SignIn(context.Background(), &usecase.SignInInput{
			Email:    "journal@example.com",
			Password: "correct-horse",
		})
	}()
	<-started

	err := fx.service.SignIn(context.Background(), &usecase.SignInInput{
		Email:    "journal@example.com",
		Password: "correct-horse",
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrOperationInFlight)

	close(release)
}

func TestCurrentUserReads_WithSession(t *testing.T) {
	gateway := &stubGateway{}
	session := validSession()
	gateway.SetSession(session)
	fx := createTestAuthService(t, gateway, &memStore{})

	assert.Equal(t, session.UserID, fx.service.CurrentUserID())
	assert.Equal(t, "Journal Writer", fx.service.CurrentUserDisplayName())
	assert.Equal(t, "journal@example.com", fx.service.CurrentUserEmail())
	assert.Equal(t, "https://cdn.example.com/avatar.png", fx.service.CurrentUserAvatar())
}

func TestCurrentUserReads_Fallbacks(t *testing.T) {
	fx := createTestAuthService(t, &stubGateway{}, &memStore{})

	assert.Equal(t, uuid.Nil, fx.service.CurrentUserID())
	assert.Equal(t, fallbackDisplayName, fx.service.CurrentUserDisplayName())
	assert.Empty(t, fx.service.CurrentUserEmail())
	assert.Empty(t, fx.service.CurrentUserAvatar())
}
