package repository

import (
	"aura/internal/domain/entity"
)

// KVStore is the durable per-app key-value collaborator backing the session
// store: one named namespace of single-key byte slots.
type KVStore interface {
	// Get returns the bytes stored under key, or (nil, nil) when the key
	// does not exist.
	Get(key string) ([]byte, error)

	// Put stores value under key, atomically replacing any prior value.
	Put(key string, value []byte) error

	// Remove deletes the value stored under key. Removing an absent key is
	// not an error.
	Remove(key string) error
}

// SessionStore persists at most one serialized session record.
type SessionStore interface {
	// Save serializes and stores the session, replacing any prior record.
	Save(session *entity.Session) error

	// Load returns the persisted session, or nil both when no record exists
	// and when the stored record cannot be decoded. A decode failure is
	// treated as "no session" and never propagates.
	Load() *entity.Session

	// Delete removes the persisted session record.
	Delete() error
}
