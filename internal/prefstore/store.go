// Package prefstore persists user rule preferences in a local BadgerDB
// key-value store.
//
// Two independent records are maintained under fixed keys: the full
// UserSettings snapshot and the per-rule preference map. Corrupted records
// are swallowed and reported as "no data"; lost preferences are recoverable
// (defaults reapply) whereas a hard failure here would keep the tool from
// starting at all.
package prefstore

import (
	"encoding/json"
	"fmt"
	"time"

	badger "github.com/dgraph-io/badger/v4"

	"github.com/ruffctl/ruffctl/internal/logger"
)

// Fixed storage keys. No other component touches these.
const (
	keyUserSettings    = "ruffctl/user-settings"
	keyRulePreferences = "ruffctl/rule-preferences"
)

// Options configures the preference store.
type Options struct {
	// Dir is the BadgerDB directory. Ignored when InMemory is set.
	Dir string

	// InMemory runs the store without touching disk. Used by tests.
	InMemory bool
}

// Store is the local preference store.
type Store struct {
	db  *badger.DB
	log *logger.Logger
	now func() time.Time
}

// Open opens the preference store.
func Open(opts Options) (*Store, error) {
	badgerOpts := badger.DefaultOptions(opts.Dir)
	badgerOpts.Logger = nil // Disable BadgerDB logging
	if opts.InMemory {
		badgerOpts = badgerOpts.WithInMemory(true)
	}

	db, err := badger.Open(badgerOpts)
	if err != nil {
		return nil, fmt.Errorf("opening preference store: %w", err)
	}

	return &Store{
		db:  db,
		log: logger.Default().WithPrefix("prefstore"),
		now: time.Now,
	}, nil
}

// Close releases the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveUserSettings writes the full settings snapshot. Last write wins; any
// merging happens in the engine before this call.
func (s *Store) SaveUserSettings(settings *UserSettings) error {
	if settings == nil {
		return fmt.Errorf("settings cannot be nil")
	}
	if settings.Version == "" {
		settings.Version = SettingsVersion
	}

	data, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("marshaling settings: %w", err)
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(keyUserSettings), data)
	})
}

// LoadUserSettings reads the settings snapshot. Returns nil when no snapshot
// exists or the stored record fails to parse; corruption never propagates.
func (s *Store) LoadUserSettings() *UserSettings {
	var data []byte

	err := s.db.View(func(txn *badger.Txn) error {
		item, getErr := txn.Get([]byte(keyUserSettings))
		if getErr != nil {
			return getErr
		}
		return item.Value(func(val []byte) error {
			data = append([]byte(nil), val...)
			return nil
		})
	})
	if err == badger.ErrKeyNotFound {
		return nil
	}
	if err != nil {
		s.log.Warn("reading user settings: %v", err)
		return nil
	}

	var settings UserSettings
	if err := json.Unmarshal(data, &settings); err != nil {
		s.log.Warn("corrupt user settings record, falling back to defaults: %v", err)
		return nil
	}
	return &settings
}

// ClearUserSettings removes the settings snapshot. Idempotent; clearing when
// no snapshot exists is not an error.
func (s *Store) ClearUserSettings() error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(keyUserSettings))
	})
}

// ClearRulePreferences removes the per-rule preference map. Idempotent.
func (s *Store) ClearRulePreferences() error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(keyRulePreferences))
	})
}

// SaveRulePreference records a single rule override. The whole preference
// map is read, the entry for code is set with a fresh timestamp, and the map
// is written back; other entries are preserved untouched.
func (s *Store) SaveRulePreference(code string, enabled bool, reason string) error {
	prefs := s.LoadRulePreferences()

	prefs[code] = RulePreference{
		Enabled:      enabled,
		IgnoreReason: reason,
		LastModified: s.now().UTC().Format(time.RFC3339),
	}

	data, err := json.Marshal(prefs)
	if err != nil {
		return fmt.Errorf("marshaling rule preferences: %w", err)
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(keyRulePreferences), data)
	})
}

// LoadRulePreferences reads the per-rule preference map. Returns an empty
// map when the record is missing or corrupt.
func (s *Store) LoadRulePreferences() map[string]RulePreference {
	var data []byte

	err := s.db.View(func(txn *badger.Txn) error {
		item, getErr := txn.Get([]byte(keyRulePreferences))
		if getErr != nil {
			return getErr
		}
		return item.Value(func(val []byte) error {
			data = append([]byte(nil), val...)
			return nil
		})
	})
	if err == badger.ErrKeyNotFound {
		return map[string]RulePreference{}
	}
	if err != nil {
		s.log.Warn("reading rule preferences: %v", err)
		return map[string]RulePreference{}
	}

	prefs := map[string]RulePreference{}
	if err := json.Unmarshal(data, &prefs); err != nil {
		s.log.Warn("corrupt rule preference record, falling back to defaults: %v", err)
		return map[string]RulePreference{}
	}
	if prefs == nil {
		prefs = map[string]RulePreference{}
	}
	return prefs
}
