package storage

import (
	"database/sql"
	"errors"
	"fmt"
)

const nicknameKey = "nickname"

// Setting returns the stored value for key. The bool is false if unset.
func (s *Store) Setting(key string) (string, bool, error) {
	var value string
	err := s.db.QueryRow("SELECT value FROM settings WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("storage: cannot read setting %s: %w", key, err)
	}
	return value, true, nil
}

// SetSetting stores value under key, replacing any previous value.
func (s *Store) SetSetting(key, value string) error {
	_, err := s.db.Exec(
		`INSERT INTO settings (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot write setting %s: %w", key, err)
	}
	return nil
}

// Nickname returns the persisted session nickname.
func (s *Store) Nickname() (string, bool, error) {
	return s.Setting(nicknameKey)
}

// SetNickname persists the session nickname.
func (s *Store) SetNickname(name string) error {
	return s.SetSetting(nicknameKey, name)
}
