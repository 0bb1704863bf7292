// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Well-known keys inside Session.Metadata. The backend stores arbitrary
// string-valued user metadata; these are the keys this client reads.
const (
	MetadataDisplayName = "full_name"
	MetadataAvatarURL   = "avatar_url"
)

// Session is the durable proof of authentication a client holds between
// requests. Exactly one session is persisted at a time; writing a new one
// replaces any prior record.
type Session struct {
	AccessToken  string            `json:"access_token"`  // Bearer token attached to every authenticated request.
	RefreshToken string            `json:"refresh_token"` // Long-lived token used to mint a new access token.
	ExpiresAt    time.Time         `json:"expires_at"`    // Absolute expiry of the access token.
	UserID       uuid.UUID         `json:"user_id"`       // The authenticated user this session belongs to.
	Email        string            `json:"email"`         // The user's login email.
	Metadata     map[string]string `json:"metadata"`      // Opaque user metadata (display name, avatar reference).
}

// IsExpired reports whether the access token has expired at the given instant.
// A session without a recorded expiry is treated as still valid; the remote
// service is the final authority and will reject a stale token anyway.
func (s *Session) IsExpired(now time.Time) bool {
	if s.ExpiresAt.IsZero() {
		return false
	}

	return !s.ExpiresAt.After(now)
}

// DisplayName returns the user's display name from metadata, or an empty
// string when absent.
func (s *Session) DisplayName() string {
	return s.Metadata[MetadataDisplayName]
}

// AvatarURL returns the user's avatar reference from metadata, or an empty
// string when absent.
func (s *Session) AvatarURL() string {
	return s.Metadata[MetadataAvatarURL]
}
