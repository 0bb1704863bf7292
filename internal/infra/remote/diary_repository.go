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

const diaryTable = "diary_entries"

// diaryRepository implements repository.DiaryRepository against the remote
// diary_entries table.
type diaryRepository struct {
	client *Client
	logger *slog.Logger
}

// NewDiaryRepository is the constructor for diaryRepository.
func NewDiaryRepository(client *Client, logger *slog.Logger) repository.DiaryRepository {
	return &diaryRepository{
		client: client,
		logger: logger,
	}
}

// diaryInsert is the write shape for a new entry. The identifier and
// creation timestamp are server-assigned and therefore absent; the optional
// coordinates serialize as explicit nulls when unset.
type diaryInsert struct {
	UserID    uuid.UUID `json:"user_id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Mood      string    `json:"mood"`
	Color     string    `json:"color"`
	Latitude  *float64  `json:"latitude"`
	Longitude *float64  `json:"longitude"`
}

// ListMine retrieves the current user's entries, newest first. Rows are
// filtered by owner at the query level and guarded again after decoding, so
// a backend without row-level enforcement still never leaks another user's
// entries to the caller.
func (r *diaryRepository) ListMine(ctx context.Context) ([]*entity.DiaryEntry, error) {
	userID, err := r.client.currentUserID()
	if err != nil {
		return nil, err
	}

	query := url.Values{}
	query.Set("select", "*")
	query.Set("user_id", eq(userID.String()))
	query.Set("order", orderNewestFirst)

	var rows []*entity.DiaryEntry
	if err := r.client.selectRows(ctx, diaryTable, query, &rows); err != nil {
		return nil, err
	}

	owned := make([]*entity.DiaryEntry, 0, len(rows))
	for _, row := range rows {
		if row.UserID != userID {
			r.logger.Warn("Dropping diary row with foreign owner",
				slog.String("row_id", row.ID.String()),
				slog.String("row_owner", row.UserID.String()))

			continue
		}
		owned = append(owned, row)
	}

	return owned, nil
}

// Create persists a new entry owned by the current user.
func (r *diaryRepository) Create(ctx context.Context, entry *entity.DiaryEntry) (*entity.DiaryEntry, error) {
	userID, err := r.client.currentUserID()
	if err != nil {
		return nil, err
	}

	payload := &diaryInsert{
		UserID:    userID,
		Title:     entry.Title,
		Content:   entry.Content,
		Mood:      entry.Mood,
		Color:     entry.Color,
		Latitude:  entry.Latitude,
		Longitude: entry.Longitude,
	}

	var rows []*entity.DiaryEntry
	if err := r.client.insertRow(ctx, diaryTable, payload, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, errors.New("diary insert returned no representation")
	}

	return rows[0], nil
}

// Update applies the non-nil fields of update to the entry with the given
// identifier. Both the identifier and the owner filter are mandatory, so the
// patch can never touch unrelated rows.
func (r *diaryRepository) Update(ctx context.Context, id uuid.UUID, update *repository.DiaryUpdate) (*entity.DiaryEntry, error) {
	userID, err := r.client.currentUserID()
	if err != nil {
		return nil, err
	}

	changes := map[string]any{}
	if update.Title != nil {
		changes["title"] = *update.Title
	}
	if update.Content != nil {
		changes["content"] = *update.Content
	}
	if update.Mood != nil {
		changes["mood"] = *update.Mood
	}
	if update.Color != nil {
		changes["color"] = *update.Color
	}
	if update.Latitude != nil {
		changes["latitude"] = *update.Latitude
	}
	if update.Longitude != nil {
		changes["longitude"] = *update.Longitude
	}
	if len(changes) == 0 {
		return nil, errors.New("diary update carries no fields")
	}

	query := url.Values{}
	query.Set("id", eq(id.String()))
	query.Set("user_id", eq(userID.String()))

	var rows []*entity.DiaryEntry
	if err := r.client.updateRows(ctx, diaryTable, query, changes, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, errors.Wrapf(repository.ErrEntryNotFound, "diary entry %s", id)
	}

	return rows[0], nil
}

// Delete removes the entry with the given identifier when it belongs to the
// current user.
func (r *diaryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	userID, err := r.client.currentUserID()
	if err != nil {
		return err
	}

	query := url.Values{}
	query.Set("id", eq(id.String()))
	query.Set("user_id", eq(userID.String()))

	return r.client.deleteRows(ctx, diaryTable, query)
}
