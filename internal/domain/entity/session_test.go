package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSession_IsExpired(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		expiresAt time.Time
		expected  bool
	}{
		{name: "future expiry", expiresAt: now.Add(time.Hour), expected: false},
		{name: "past expiry", expiresAt: now.Add(-time.Hour), expected: true},
		{name: "exactly now", expiresAt: now, expected: true},
		{name: "no recorded expiry", expiresAt: time.Time{}, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			session := &Session{ExpiresAt: tt.expiresAt}
			assert.Equal(t, tt.expected, session.IsExpired(now))
		})
	}
}

func TestSession_MetadataAccessors(t *testing.T) {
	session := &Session{Metadata: map[string]string{
		MetadataDisplayName: "Journal Writer",
		MetadataAvatarURL:   "https://cdn.example.com/a.png",
	}}

	assert.Equal(t, "Journal Writer", session.DisplayName())
	assert.Equal(t, "https://cdn.example.com/a.png", session.AvatarURL())
}

func TestSession_MetadataAccessorsWithoutMetadata(t *testing.T) {
	session := &Session{}

	assert.Empty(t, session.DisplayName())
	assert.Empty(t, session.AvatarURL())
}
