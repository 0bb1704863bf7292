package entity

import (
	"time"

	"github.com/google/uuid"
)

// ScanEntry is a single stored scan result owned by exactly one user.
type ScanEntry struct {
	ID         uuid.UUID `json:"id"`         // Server-assigned; uuid.Nil before the first successful create.
	UserID     uuid.UUID `json:"user_id"`    // Owning user, always present on read.
	Result     string    `json:"result"`     // Classifier label for the scanned subject.
	Confidence float64   `json:"confidence"` // Classifier confidence in [0, 1].
	CreatedAt  time.Time `json:"created_at"` // Server-assigned creation timestamp.
}
