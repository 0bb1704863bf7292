package entity

import (
	"time"

	"github.com/google/uuid"
)

// DiaryEntry is a single journal entry owned by exactly one user.
// The JSON tags are the wire contract with the remote table; optional fields
// are pointers without omitempty so that absent values serialize as explicit
// nulls, which is what the backend expects.
type DiaryEntry struct {
	ID        uuid.UUID `json:"id"`         // Server-assigned; uuid.Nil before the first successful create.
	UserID    uuid.UUID `json:"user_id"`    // Owning user, always present on read.
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Mood      string    `json:"mood"`
	Color     string    `json:"color"`
	CreatedAt time.Time `json:"created_at"` // Server-assigned creation timestamp.
	Latitude  *float64  `json:"latitude"`   // Optional location of the entry.
	Longitude *float64  `json:"longitude"`
}

// Persisted reports whether the entry has already been stored remotely.
// Client code must not assume an identifier before a successful create.
func (e *DiaryEntry) Persisted() bool {
	return e.ID != uuid.Nil
}
