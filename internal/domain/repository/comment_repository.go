package repository

import (
	"context"

	"aura/internal/domain/entity"

	"github.com/google/uuid"
)

// CommentRepository defines operations over public article comments.
// Reads are keyed by article reference, not by user; the backend's own
// visibility policy applies.
type CommentRepository interface {
	// ListForArticle retrieves all comments for the given article URL,
	// newest first, with the author profile joined in.
	ListForArticle(ctx context.Context, newsURL string) ([]*entity.ArticleComment, error)

	// Create posts a new comment as the current user.
	Create(ctx context.Context, comment *entity.ArticleComment) (*entity.ArticleComment, error)

	// Delete removes the comment with the given identifier.
	Delete(ctx context.Context, id uuid.UUID) error
}
