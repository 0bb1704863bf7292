package remote

import (
	"context"
	"log/slog"
	"net/url"

	"aura/internal/domain/entity"
	"aura/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

const scanTable = "scans"

// scanRepository implements repository.ScanRepository against the remote
// scans table.
type scanRepository struct {
	client *Client
	logger *slog.Logger
}

// NewScanRepository is the constructor for scanRepository.
func NewScanRepository(client *Client, logger *slog.Logger) repository.ScanRepository {
	return &scanRepository{
		client: client,
		logger: logger,
	}
}

// scanInsert is the write shape for a new scan; id and created_at are
// server-assigned.
type scanInsert struct {
	UserID     uuid.UUID `json:"user_id"`
	Result     string    `json:"result"`
	Confidence float64   `json:"confidence"`
}

// ListMine retrieves the current user's scans ordered newest-first by
// creation timestamp at the query level.
func (r *scanRepository) ListMine(ctx context.Context) ([]*entity.ScanEntry, error) {
	userID, err := r.client.currentUserID()
	if err != nil {
		return nil, err
	}

	query := url.Values{}
	query.Set("select", "*")
	query.Set("user_id", eq(userID.String()))
	query.Set("order", orderNewestFirst)

	var rows []*entity.ScanEntry
	if err := r.client.selectRows(ctx, scanTable, query, &rows); err != nil {
		return nil, err
	}

	owned := make([]*entity.ScanEntry, 0, len(rows))
	for _, row := range rows {
		if row.UserID != userID {
			r.logger.Warn("Dropping scan row with foreign owner",
				slog.String("row_id", row.ID.String()),
				slog.String("row_owner", row.UserID.String()))

			continue
		}
		owned = append(owned, row)
	}

	return owned, nil
}

// Create persists a new scan result for the current user.
func (r *scanRepository) Create(ctx context.Context, scan *entity.ScanEntry) (*entity.ScanEntry, error) {
	userID, err := r.client.currentUserID()
	if err != nil {
		return nil, err
	}

	payload := &scanInsert{
		UserID:     userID,
		Result:     scan.Result,
		Confidence: scan.Confidence,
	}

	var rows []*entity.ScanEntry
	if err := r.client.insertRow(ctx, scanTable, payload, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, errors.New("scan insert returned no representation")
	}

	return rows[0], nil
}

// Delete removes the scan with the given identifier when it belongs to the
// current user.
func (r *scanRepository) Delete(ctx context.Context, id uuid.UUID) error {
	userID, err := r.client.currentUserID()
	if err != nil {
		return err
	}

	query := url.Values{}
	query.Set("id", eq(id.String()))
	query.Set("user_id", eq(userID.String()))

	return r.client.deleteRows(ctx, scanTable, query)
}
