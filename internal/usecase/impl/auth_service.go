// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"aura/internal/domain/entity"
	domainerrors "aura/internal/domain/errors"
	"aura/internal/domain/repository"
	"aura/internal/domain/service"
	"aura/internal/usecase"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// fallbackDisplayName is returned by CurrentUserDisplayName when no display
// name is known.
const fallbackDisplayName = "Aura user"

// authService implements the AuthUsecase interface. It is the single writer
// of the observable auth state: every mutating operation runs to completion
// and commits exactly one terminal transition.
type authService struct {
	gateway  service.AuthGateway
	store    repository.SessionStore
	validate *validator.Validate
	state    *stateHolder
	logger   *slog.Logger

	// opMu serializes mutating operations. Duplicate attempts are rejected
	// via TryLock instead of queueing so two sign-ins can never race toward
	// competing terminal states; SignOut alone waits its turn because local
	// sign-out must always win.
	opMu sync.Mutex
}

// AuthServiceParams holds dependencies for authService, injected by Fx.
type AuthServiceParams struct {
	fx.In

	Gateway service.AuthGateway
	Store   repository.SessionStore
	Logger  *slog.Logger
}

// NewAuthService is the constructor for authService.
func NewAuthService(params AuthServiceParams) usecase.AuthUsecase {
	return &authService{
		gateway:  params.Gateway,
		store:    params.Store,
		validate: validator.New(),
		state:    newStateHolder(),
		logger:   params.Logger,
	}
}

// CurrentState returns the current authentication state.
func (srv *authService) CurrentState() entity.AuthState {
	return srv.state.Current()
}

// Subscribe registers fn for synchronous notification on every transition.
func (srv *authService) Subscribe(fn func(entity.AuthState)) func() {
	return srv.state.Subscribe(fn)
}

// CheckAuthStatus seeds the auth state from the persisted session. A missing,
// undecodable or unrefreshable session resolves to Unauthenticated; the worst
// case is a forced re-authentication, never a crash.
func (srv *authService) CheckAuthStatus(ctx context.Context) error {
	if !srv.opMu.TryLock() {
		return errors.WithStack(domainerrors.ErrOperationInFlight)
	}
	defer srv.opMu.Unlock()

	restored := srv.store.Load()
	if restored == nil {
		srv.gateway.ClearSession()
		srv.state.Set(entity.Unauthenticated())

		return nil
	}

	if restored.IsExpired(time.Now()) {
		return srv.refreshRestoredSession(ctx, restored)
	}

	srv.gateway.SetSession(restored)
	srv.state.Set(entity.Authenticated())
	srv.logger.Debug("Session restored", slog.String("user_id", restored.UserID.String()))

	return nil
}

// refreshRestoredSession tries to turn an expired persisted session into a
// fresh one via its refresh token. Any failure clears the slot and resolves
// to Unauthenticated.
func (srv *authService) refreshRestoredSession(ctx context.Context, restored *entity.Session) error {
	if restored.RefreshToken == "" {
		srv.discardSession()
		srv.state.Set(entity.Unauthenticated())

		return nil
	}

	refreshed, err := srv.gateway.RefreshSession(ctx, restored.RefreshToken)
	if err != nil {
		srv.logger.Warn("Failed to refresh restored session", slog.Any("error", err))
		srv.discardSession()
		srv.state.Set(entity.Unauthenticated())

		return nil
	}

	srv.persistSession(refreshed)
	srv.state.Set(entity.Authenticated())
	srv.logger.Debug("Session refreshed", slog.String("user_id", refreshed.UserID.String()))

	return nil
}

// SignUp attempts remote account creation.
func (srv *authService) SignUp(ctx context.Context, input *usecase.SignUpInput) error {
	if !srv.opMu.TryLock() {
		return errors.WithStack(domainerrors.ErrOperationInFlight)
	}
	defer srv.opMu.Unlock()

	srv.state.Set(entity.Loading())

	if err := srv.validate.Struct(input); err != nil {
		return srv.fail(errors.Wrap(domainerrors.ErrValidationRejected.WithDetails(err.Error()), "sign up input"))
	}

	session, err := srv.gateway.SignUp(ctx, input.Email, input.Password)
	if err != nil {
		return srv.fail(errors.Wrap(err, "sign up"))
	}

	if session == nil {
		// The backend's confirmation policy withheld the session; reporting
		// success here would be a lie, the user still has to confirm.
		srv.state.Set(entity.Unauthenticated())
		srv.logger.Info("Account created, awaiting email confirmation", slog.String("email", input.Email))

		return nil
	}

	srv.persistSession(session)
	srv.state.Set(entity.Authenticated())

	return nil
}

// SignIn performs a password-grant exchange.
func (srv *authService) SignIn(ctx context.Context, input *usecase.SignInInput) error {
	if !srv.opMu.TryLock() {
		return errors.WithStack(domainerrors.ErrOperationInFlight)
	}
	defer srv.opMu.Unlock()

	srv.state.Set(entity.Loading())

	if err := srv.validate.Struct(input); err != nil {
		return srv.fail(errors.Wrap(domainerrors.ErrValidationRejected.WithDetails(err.Error()), "sign in input"))
	}

	session, err := srv.gateway.SignInWithPassword(ctx, input.Email, input.Password)
	if err != nil {
		return srv.fail(errors.Wrap(err, "sign in"))
	}

	srv.persistSession(session)
	srv.state.Set(entity.Authenticated())

	return nil
}

// HandleFederatedResult consumes the result of an external native sign-in
// flow. The token exchange already happened inside that flow; this only
// reconciles the outcome with the observable state.
func (srv *authService) HandleFederatedResult(_ context.Context, result *entity.FederatedResult) error {
	if !srv.opMu.TryLock() {
		return errors.WithStack(domainerrors.ErrOperationInFlight)
	}
	defer srv.opMu.Unlock()

	switch result.Outcome {
	case entity.FederatedSuccess:
		if result.Session == nil {
			return srv.fail(errors.WithStack(
				domainerrors.ErrDecodeFailed.WithDetails("federated success without session")))
		}
		srv.persistSession(result.Session)
		srv.state.Set(entity.Authenticated())

		return nil

	case entity.FederatedError, entity.FederatedNetworkError:
		message := result.Message
		if message == "" {
			message = domainerrors.ErrUnknown.Message()
		}
		srv.state.Set(entity.ErrorState(message))

		return errors.Wrap(domainerrors.ErrUnknown.WithDetails(message), "federated sign-in")

	case entity.FederatedCancelled:
		// The user backed out; they stay on the unauthenticated screen with
		// no state transition at all.
		return nil

	default:
		return errors.Errorf("unexpected federated outcome: %s", result.Outcome)
	}
}

// SignOut invalidates the remote session and clears local state. Local
// clearing is authoritative: the state ends Unauthenticated even when the
// remote invalidation fails, so the UI can never stay stuck signed-in.
func (srv *authService) SignOut(ctx context.Context) error {
	srv.opMu.Lock()
	defer srv.opMu.Unlock()

	if err := srv.gateway.SignOut(ctx); err != nil {
		srv.logger.Warn("Remote sign-out failed, clearing local session anyway", slog.Any("error", err))
	}

	srv.discardSession()
	srv.state.Set(entity.Unauthenticated())

	return nil
}

// CurrentUserID returns the signed-in user's identifier, or uuid.Nil.
func (srv *authService) CurrentUserID() uuid.UUID {
	if session := srv.gateway.Session(); session != nil {
		return session.UserID
	}

	return uuid.Nil
}

// CurrentUserDisplayName returns the signed-in user's display name, or the
// documented placeholder.
func (srv *authService) CurrentUserDisplayName() string {
	if session := srv.gateway.Session(); session != nil {
		if name := session.DisplayName(); name != "" {
			return name
		}
	}

	return fallbackDisplayName
}

// CurrentUserEmail returns the signed-in user's email, or "".
func (srv *authService) CurrentUserEmail() string {
	if session := srv.gateway.Session(); session != nil {
		return session.Email
	}

	return ""
}

// CurrentUserAvatar returns the signed-in user's avatar reference, or "".
func (srv *authService) CurrentUserAvatar() string {
	if session := srv.gateway.Session(); session != nil {
		return session.AvatarURL()
	}

	return ""
}

// persistSession installs the session on the gateway and stores it durably.
// A failed persist is logged and accepted: the session still works for this
// process lifetime, the user just signs in again after a restart.
func (srv *authService) persistSession(session *entity.Session) {
	srv.gateway.SetSession(session)
	if err := srv.store.Save(session); err != nil {
		srv.logger.Error("Failed to persist session", slog.Any("error", err))
	}
}

// discardSession clears both the gateway session and the persisted record.
func (srv *authService) discardSession() {
	srv.gateway.ClearSession()
	if err := srv.store.Delete(); err != nil {
		srv.logger.Error("Failed to delete persisted session", slog.Any("error", err))
	}
}

// fail converts any failure into the Error state with a human-readable
// message. The raw cause stays in the logs, never in the state.
func (srv *authService) fail(err error) error {
	normalized := domainerrors.Normalize(err)
	srv.logger.Error("Auth operation failed",
		slog.String("kind", string(normalized.Kind())),
		slog.Any("error", err))

	srv.state.Set(entity.ErrorState(normalized.Message()))

	return err
}
