package entity

import (
	"time"

	"github.com/google/uuid"
)

// Profile is the public-facing profile row of a user. Its identifier is the
// user's own identifier. Optional fields are pointers without omitempty so
// that clearing a field writes an explicit null.
type Profile struct {
	ID        uuid.UUID `json:"id"`
	Bio       *string   `json:"bio"`
	FullName  *string   `json:"full_name"`
	Avatar    *string   `json:"avatar"`
	CreatedAt time.Time `json:"created_at"`
}
