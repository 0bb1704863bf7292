// Package repository defines the interfaces for the data-access layer.
// These interfaces act as a contract between the domain/application layers
// and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"aura/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrEntryNotFound is a domain-specific error returned when an update or
// delete targets an identifier with no matching row.
var ErrEntryNotFound = errors.New("entry not found")

// DiaryUpdate carries a partial update for a diary entry. Nil fields are left
// untouched on the remote row.
type DiaryUpdate struct {
	Title     *string
	Content   *string
	Mood      *string
	Color     *string
	Latitude  *float64
	Longitude *float64
}

// DiaryRepository defines ownership-scoped operations over diary entries.
// Reads are implicitly restricted to the current session's user.
type DiaryRepository interface {
	// ListMine retrieves all diary entries owned by the current user,
	// newest first.
	ListMine(ctx context.Context) ([]*entity.DiaryEntry, error)

	// Create persists a new entry. The identifier and creation timestamp on
	// the returned entry are server-assigned and authoritative only after a
	// successful call.
	Create(ctx context.Context, entry *entity.DiaryEntry) (*entity.DiaryEntry, error)

	// Update applies the non-nil fields of update to the entry with the given
	// identifier. Returns ErrEntryNotFound when no row matches.
	Update(ctx context.Context, id uuid.UUID, update *DiaryUpdate) (*entity.DiaryEntry, error)

	// Delete removes the entry with the given identifier. Deleting an unknown
	// identifier is not guaranteed to fail; callers must not rely on either
	// outcome.
	Delete(ctx context.Context, id uuid.UUID) error
}
