// Package consent implements the cookie consent state machine and the persistence of the
// visitor's latest decision under a single well-known key.
package consent

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/cookieconsent/pkg/domain"
)

//go:generate moq -out mocks/settings.go -pkg mocks -skip-ensure -fmt goimports . SettingStore
//go:generate moq -out mocks/record_store.go -pkg mocks -skip-ensure -fmt goimports . RecordStore

// DefaultKey is the storage key used for the consent record
const DefaultKey = "cookieConsent"

// SettingStore is a key-value persistent store scoped to the visitor's device
type SettingStore interface {
	GetSetting(ctx context.Context, key string) (string, error)
	SetSetting(ctx context.Context, key, value string) error
}

// Store keeps exactly one consent record under a fixed key.
// Absent, malformed or unreadable values are all reported as "no record".
type Store struct {
	settings SettingStore
	key      string
}

// NewStore makes a consent store on top of the settings store. Empty key means DefaultKey.
func NewStore(settings SettingStore, key string) *Store {
	if key == "" {
		key = DefaultKey
	}
	return &Store{settings: settings, key: key}
}

// Key returns the storage key of the consent record
func (s *Store) Key() string {
	return s.key
}

// HasRecord reports whether a valid consent record is stored
func (s *Store) HasRecord(ctx context.Context) bool {
	_, ok := s.Load(ctx)
	return ok
}

// Load returns the stored record. The second value is false if there is no usable record.
// A stored object without decidedAt (or legacy timestamp) still counts as a decision,
// its DecidedAt is the zero time and should be checked with IsZero before use.
func (s *Store) Load(ctx context.Context) (domain.ConsentRecord, bool) {
	value, err := s.settings.GetSetting(ctx, s.key)
	if err != nil {
		lgr.Printf("[WARN] can't read consent record %q, treating as undecided: %v", s.key, err)
		return domain.ConsentRecord{}, false
	}
	if value == "" {
		return domain.ConsentRecord{}, false
	}

	rec, err := decodeRecord([]byte(value))
	if err != nil {
		lgr.Printf("[WARN] malformed consent record %q, treating as undecided: %v", s.key, err)
		return domain.ConsentRecord{}, false
	}
	return rec, true
}

// Save replaces the stored record. Necessary is always written as true.
func (s *Store) Save(ctx context.Context, rec domain.ConsentRecord) error {
	data, err := encodeRecord(rec)
	if err != nil {
		return fmt.Errorf("encode consent record: %w", err)
	}
	if err := s.settings.SetSetting(ctx, s.key, string(data)); err != nil {
		return fmt.Errorf("write consent record: %w", err)
	}
	lgr.Printf("[DEBUG] consent saved, analytics=%v, marketing=%v", rec.Analytics, rec.Marketing)
	return nil
}

// recordJSON is the stored layout of domain.ConsentRecord
type recordJSON struct {
	Necessary bool   `json:"necessary"`
	Analytics bool   `json:"analytics"`
	Marketing bool   `json:"marketing"`
	DecidedAt string `json:"decidedAt"`
	Timestamp string `json:"timestamp,omitempty"` // legacy name of decidedAt, read only
}

func encodeRecord(rec domain.ConsentRecord) ([]byte, error) {
	return json.Marshal(recordJSON{
		Necessary: true,
		Analytics: rec.Analytics,
		Marketing: rec.Marketing,
		DecidedAt: rec.DecidedAt.UTC().Format(time.RFC3339Nano),
	})
}

func decodeRecord(data []byte) (domain.ConsentRecord, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] != '{' {
		return domain.ConsentRecord{}, errors.New("not a json object")
	}

	var rj recordJSON
	if err := json.Unmarshal(data, &rj); err != nil {
		return domain.ConsentRecord{}, fmt.Errorf("unmarshal: %w", err)
	}

	rec := domain.ConsentRecord{Necessary: true, Analytics: rj.Analytics, Marketing: rj.Marketing}

	ts := rj.DecidedAt
	if ts == "" {
		ts = rj.Timestamp
	}
	if ts != "" {
		decidedAt, err := time.Parse(time.RFC3339Nano, ts)
		if err != nil {
			return domain.ConsentRecord{}, fmt.Errorf("parse decidedAt %q: %w", ts, err)
		}
		rec.DecidedAt = decidedAt.UTC()
	}
	return rec, nil
}
