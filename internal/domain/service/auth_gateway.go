// Package service defines the interfaces for domain-level collaborators
// implemented by the infrastructure layer.
package service

import (
	"context"

	"aura/internal/domain/entity"
)

// AuthGateway is the session-bearing handle to the backend's auth endpoints.
// It owns the current session; installing or clearing a session changes the
// credentials attached to every subsequent remote call.
type AuthGateway interface {
	// SignUp creates an account. A nil session with a nil error means the
	// account was created but a session is pending email confirmation.
	SignUp(ctx context.Context, email, password string) (*entity.Session, error)

	// SignInWithPassword exchanges credentials for a session.
	SignInWithPassword(ctx context.Context, email, password string) (*entity.Session, error)

	// RefreshSession exchanges a refresh token for a fresh session.
	RefreshSession(ctx context.Context, refreshToken string) (*entity.Session, error)

	// SignOut invalidates the current session on the server.
	SignOut(ctx context.Context) error

	// SetSession installs a session on the gateway.
	SetSession(session *entity.Session)

	// Session returns the installed session, or nil when anonymous.
	Session() *entity.Session

	// ClearSession drops the installed session.
	ClearSession()
}
