package store

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/dgraph-io/badger/v4"

	"ai-persona-chat/client/internal/models"
)

// Storage keys. userId is kept string-encoded, matching how the id travels
// between sessions; persona is an optional cached JSON copy.
const (
	keyUserID  = "userId"
	keyPersona = "persona"
)

// Store is the client's durable local session record, backed by BadgerDB.
// It survives restarts and is cleared only by Reset.
type Store struct {
	db *badger.DB
}

// Open opens (or creates) the session database in dirPath.
func Open(dirPath string) (*Store, error) {
	opts := badger.DefaultOptions(dirPath).
		WithLoggingLevel(badger.ERROR)

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open session database: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// UserID returns the persisted user id. ok is false when no id has been
// stored yet.
func (s *Store) UserID() (id int64, ok bool, err error) {
	err = s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(keyUserID))
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			parsed, err := strconv.ParseInt(string(val), 10, 64)
			if err != nil {
				return fmt.Errorf("corrupt user id %q: %w", val, err)
			}
			id = parsed
			ok = true
			return nil
		})
	})
	if err != nil {
		return 0, false, err
	}
	return id, ok, nil
}

// SetUserID persists the user id.
func (s *Store) SetUserID(id int64) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(keyUserID), []byte(strconv.FormatInt(id, 10)))
	})
}

// Persona returns the cached persona copy, if one was stored.
func (s *Store) Persona() (persona models.Persona, ok bool, err error) {
	err = s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(keyPersona))
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			if err := json.Unmarshal(val, &persona); err != nil {
				return fmt.Errorf("corrupt cached persona: %w", err)
			}
			ok = true
			return nil
		})
	})
	if err != nil {
		return models.Persona{}, false, err
	}
	return persona, ok, nil
}

// SetPersona caches a persona copy locally.
func (s *Store) SetPersona(persona models.Persona) error {
	data, err := json.Marshal(persona)
	if err != nil {
		return fmt.Errorf("failed to marshal persona: %w", err)
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(keyPersona), data)
	})
}

// Reset removes all persisted session state.
func (s *Store) Reset() error {
	return s.db.Update(func(txn *badger.Txn) error {
		for _, key := range []string{keyUserID, keyPersona} {
			if err := txn.Delete([]byte(key)); err != nil && err != badger.ErrKeyNotFound {
				return err
			}
		}
		return nil
	})
}
