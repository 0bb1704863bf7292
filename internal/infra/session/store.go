// Package session persists the single authentication session record in a
// durable key-value slot.
package session

import (
	"encoding/json"
	"log/slog"

	"aura/internal/domain/entity"
	"aura/internal/domain/repository"

	"github.com/pkg/errors"
)

// Store keeps one serialized session in a named slot of a key-value store.
// The serialization format is the same JSON codec used for wire payloads.
type Store struct {
	kv     repository.KVStore
	slot   string
	logger *slog.Logger
}

// NewStore returns a session store writing to the given slot.
func NewStore(kv repository.KVStore, slot string, logger *slog.Logger) *Store {
	return &Store{
		kv:     kv,
		slot:   slot,
		logger: logger,
	}
}

var _ repository.SessionStore = (*Store)(nil)

// Save serializes and stores the session, replacing any prior record.
// A failed persist is reported to the caller and logged; the accepted
// limitation is that a failed save followed by process death re-prompts
// login on the next start.
func (s *Store) Save(session *entity.Session) error {
	if session == nil {
		return errors.New("session: cannot save nil session")
	}

	data, err := json.Marshal(session)
	if err != nil {
		s.logger.Error("Failed to serialize session", slog.Any("error", err))

		return errors.Wrap(err, "session: serialize")
	}

	if err := s.kv.Put(s.slot, data); err != nil {
		s.logger.Error("Failed to persist session", slog.Any("error", err))

		return errors.Wrap(err, "session: persist")
	}

	return nil
}

// Load returns the persisted session, or nil both when no record exists and
// when the stored record cannot be decoded. A corrupted record is treated as
// "no session" so startup never crashes on it; the user simply has to sign
// in again.
func (s *Store) Load() *entity.Session {
	data, err := s.kv.Get(s.slot)
	if err != nil {
		s.logger.Warn("Failed to read persisted session", slog.Any("error", err))

		return nil
	}
	if len(data) == 0 {
		return nil
	}

	var session entity.Session
	if err := json.Unmarshal(data, &session); err != nil {
		s.logger.Warn("Discarding undecodable session record", slog.Any("error", err))

		return nil
	}

	return &session
}

// Delete removes the persisted session record.
func (s *Store) Delete() error {
	if err := s.kv.Remove(s.slot); err != nil {
		s.logger.Error("Failed to delete persisted session", slog.Any("error", err))

		return errors.Wrap(err, "session: delete")
	}

	return nil
}
