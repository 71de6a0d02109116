package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/go-pkgz/repeater/v2"
	"github.com/jmoiron/sqlx"

	"github.com/umputun/cookieconsent/pkg/domain"
)

// SettingRepository handles setting-related database operations
type SettingRepository struct {
	db *sqlx.DB
}

// settingSQL is the database row of a setting
type settingSQL struct {
	Key       string    `db:"key"`
	Value     string    `db:"value"`
	UpdatedAt time.Time `db:"updated_at"`
}

// NewSettingRepository creates a new setting repository
func NewSettingRepository(db *sqlx.DB) *SettingRepository {
	return &SettingRepository{db: db}
}

// GetSetting retrieves a setting value, empty string if not set
func (r *SettingRepository) GetSetting(ctx context.Context, key string) (string, error) {
	var value string
	err := r.db.GetContext(ctx, &value, "SELECT value FROM settings WHERE key = ?", key)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("get setting: %w", err)
	}
	return value, nil
}

// GetSettingEntry retrieves a setting with its update time, nil if not set
func (r *SettingRepository) GetSettingEntry(ctx context.Context, key string) (*domain.Setting, error) {
	var row settingSQL
	err := r.db.GetContext(ctx, &row, "SELECT key, value, updated_at FROM settings WHERE key = ?", key)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get setting entry: %w", err)
	}
	return &domain.Setting{Key: row.Key, Value: row.Value, UpdatedAt: row.UpdatedAt}, nil
}

// SetSetting stores a setting value, replacing the previous one in a single statement.
// Retries while the database is locked by another writer.
func (r *SettingRepository) SetSetting(ctx context.Context, key, value string) error {
	retrier := repeater.NewBackoff(5, 50*time.Millisecond, repeater.WithMaxDelay(2*time.Second))

	err := retrier.Do(ctx, func() error {
		query := `
			INSERT INTO settings (key, value, updated_at) VALUES (?, ?, ?)
			ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
		`
		_, err := r.db.ExecContext(ctx, query, key, value, time.Now().UTC())
		if err != nil {
			if isLockError(err) {
				return err // retry
			}
			return &criticalError{err: fmt.Errorf("set setting: %w", err)}
		}
		return nil
	}, &criticalError{})

	var critErr *criticalError
	if errors.As(err, &critErr) {
		return critErr.err
	}
	if err != nil {
		return fmt.Errorf("set setting %q: %w", key, err)
	}
	return nil
}
