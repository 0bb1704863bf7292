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

const commentTable = "comments"

// commentRepository implements repository.CommentRepository against the
// remote comments table. Comments are public and keyed by article reference;
// reads are deliberately not scoped to the current user.
type commentRepository struct {
	client *Client
	logger *slog.Logger
}

// NewCommentRepository is the constructor for commentRepository.
func NewCommentRepository(client *Client, logger *slog.Logger) repository.CommentRepository {
	return &commentRepository{
		client: client,
		logger: logger,
	}
}

// commentInsert is the write shape for a new comment; id and created_at are
// server-assigned.
type commentInsert struct {
	Comment string    `json:"comment"`
	NewsURL string    `json:"news_url"`
	UserID  uuid.UUID `json:"user_id"`
}

// ListForArticle retrieves all comments on the given article, newest first,
// with the author profile joined in.
func (r *commentRepository) ListForArticle(ctx context.Context, newsURL string) ([]*entity.ArticleComment, error) {
	query := url.Values{}
	query.Set("select", "*,profile:profiles(*)")
	query.Set("news_url", eq(newsURL))
	query.Set("order", orderNewestFirst)

	var rows []*entity.ArticleComment
	if err := r.client.selectRows(ctx, commentTable, query, &rows); err != nil {
		return nil, err
	}

	return rows, nil
}

// Create posts a new comment as the current user.
func (r *commentRepository) Create(ctx context.Context, comment *entity.ArticleComment) (*entity.ArticleComment, error) {
	userID, err := r.client.currentUserID()
	if err != nil {
		return nil, err
	}

	payload := &commentInsert{
		Comment: comment.Comment,
		NewsURL: comment.NewsURL,
		UserID:  userID,
	}

	var rows []*entity.ArticleComment
	if err := r.client.insertRow(ctx, commentTable, payload, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, errors.New("comment insert returned no representation")
	}

	return rows[0], nil
}

// Delete removes the comment with the given identifier when it was authored
// by the current user.
func (r *commentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	userID, err := r.client.currentUserID()
	if err != nil {
		return err
	}

	query := url.Values{}
	query.Set("id", eq(id.String()))
	query.Set("user_id", eq(userID.String()))

	return r.client.deleteRows(ctx, commentTable, query)
}
