// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"aura/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// SignUpInput defines the data required to create a new account.
type SignUpInput struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=6"`
}

// SignInInput defines the data required for a password sign-in.
type SignInInput struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

// AuthUsecase is the authentication controller every screen depends on. Its
// mutating operations are blocking and meant to run on a caller-owned
// goroutine; their outcome is published through the single observable auth
// state. Overlapping mutating calls on the same instance are rejected so two
// attempts can never race toward competing terminal states.
type AuthUsecase interface {
	// CurrentState returns the current authentication state.
	CurrentState() entity.AuthState

	// Subscribe registers fn for synchronous notification on every state
	// transition and returns an unsubscribe function. fn must not call back
	// into the controller.
	Subscribe(fn func(entity.AuthState)) (unsubscribe func())

	// CheckAuthStatus seeds the state from the persisted session: it sets
	// Authenticated when a non-expired (or refreshable) session exists and
	// Unauthenticated otherwise. Idempotent; meant to run once at startup.
	CheckAuthStatus(ctx context.Context) error

	// SignUp attempts remote account creation. Terminates in Authenticated,
	// Unauthenticated (email confirmation pending) or Error, never Loading.
	SignUp(ctx context.Context, input *SignUpInput) error

	// SignIn performs a password-grant exchange. Terminates in Authenticated
	// or Error, never Loading.
	SignIn(ctx context.Context, input *SignInInput) error

	// HandleFederatedResult consumes the outcome of an external native
	// sign-in flow. A cancelled flow leaves the state untouched.
	HandleFederatedResult(ctx context.Context, result *entity.FederatedResult) error

	// SignOut invalidates the remote session and sets Unauthenticated
	// unconditionally; local session clearing is authoritative even when the
	// remote call fails.
	SignOut(ctx context.Context) error

	// CurrentUserID returns the signed-in user's identifier, or uuid.Nil.
	CurrentUserID() uuid.UUID

	// CurrentUserDisplayName returns the signed-in user's display name, or
	// the placeholder "Aura user".
	CurrentUserDisplayName() string

	// CurrentUserEmail returns the signed-in user's email, or "".
	CurrentUserEmail() string

	// CurrentUserAvatar returns the signed-in user's avatar reference, or "".
	CurrentUserAvatar() string
}
