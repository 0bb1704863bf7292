package remote

import (
	"context"
	"log/slog"
	"net/url"

	"aura/internal/domain/entity"
	"aura/internal/domain/repository"

	"github.com/pkg/errors"
)

const profileTable = "profiles"

// profileRepository implements repository.ProfileRepository against the
// remote profiles table. The profile row shares its identifier with the
// owning user.
type profileRepository struct {
	client *Client
	logger *slog.Logger
}

// NewProfileRepository is the constructor for profileRepository.
func NewProfileRepository(client *Client, logger *slog.Logger) repository.ProfileRepository {
	return &profileRepository{
		client: client,
		logger: logger,
	}
}

// Get retrieves the current user's profile.
func (r *profileRepository) Get(ctx context.Context) (*entity.Profile, error) {
	userID, err := r.client.currentUserID()
	if err != nil {
		return nil, err
	}

	query := url.Values{}
	query.Set("select", "*")
	query.Set("id", eq(userID.String()))

	var rows []*entity.Profile
	if err := r.client.selectRows(ctx, profileTable, query, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, errors.Wrapf(repository.ErrProfileNotFound, "user %s", userID)
	}

	return rows[0], nil
}

// Update applies the non-nil fields of update to the current user's profile
// row.
func (r *profileRepository) Update(ctx context.Context, update *repository.ProfileUpdate) (*entity.Profile, error) {
	userID, err := r.client.currentUserID()
	if err != nil {
		return nil, err
	}

	changes := map[string]any{}
	if update.Bio != nil {
		changes["bio"] = *update.Bio
	}
	if update.FullName != nil {
		changes["full_name"] = *update.FullName
	}
	if update.Avatar != nil {
		changes["avatar"] = *update.Avatar
	}
	if len(changes) == 0 {
		return nil, errors.New("profile update carries no fields")
	}

	query := url.Values{}
	query.Set("id", eq(userID.String()))

	var rows []*entity.Profile
	if err := r.client.updateRows(ctx, profileTable, query, changes, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, errors.Wrapf(repository.ErrProfileNotFound, "user %s", userID)
	}

	return rows[0], nil
}
