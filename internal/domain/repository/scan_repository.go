package repository

import (
	"context"

	"aura/internal/domain/entity"

	"github.com/google/uuid"
)

// ScanRepository defines ownership-scoped operations over stored scan results.
type ScanRepository interface {
	// ListMine retrieves all scans owned by the current user, ordered
	// newest-first by creation timestamp at the query level.
	ListMine(ctx context.Context) ([]*entity.ScanEntry, error)

	// Create persists a new scan result for the current user.
	Create(ctx context.Context, scan *entity.ScanEntry) (*entity.ScanEntry, error)

	// Delete removes the scan with the given identifier.
	Delete(ctx context.Context, id uuid.UUID) error
}
