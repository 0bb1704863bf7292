package entity

import (
	"time"

	"github.com/google/uuid"
)

// ArticleComment is a public comment keyed by the article it belongs to.
// Visibility is not scoped to the current user; the backend restricts it by
// policy instead.
type ArticleComment struct {
	ID        uuid.UUID `json:"id"`       // Server-assigned; uuid.Nil before the first successful create.
	Comment   string    `json:"comment"`
	NewsURL   string    `json:"news_url"` // The article this comment is attached to.
	UserID    uuid.UUID `json:"user_id"`  // Author; session-assigned on write.
	CreatedAt time.Time `json:"created_at"`
	Profile   *Profile  `json:"profile"`  // Author profile joined on read, nil when not requested.
}
