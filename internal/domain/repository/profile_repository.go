package repository

import (
	"context"
	"errors"

	"aura/internal/domain/entity"
)

// ErrProfileNotFound is returned when the current user has no profile row yet.
var ErrProfileNotFound = errors.New("profile not found")

// ProfileUpdate carries a partial update for the current user's profile.
// Nil fields are left untouched.
type ProfileUpdate struct {
	Bio      *string
	FullName *string
	Avatar   *string
}

// ProfileRepository defines operations over the current user's profile row.
type ProfileRepository interface {
	// Get retrieves the profile of the current user.
	// Returns ErrProfileNotFound when none exists.
	Get(ctx context.Context) (*entity.Profile, error)

	// Update applies the non-nil fields of update to the current user's
	// profile row.
	Update(ctx context.Context, update *ProfileUpdate) (*entity.Profile, error)
}
