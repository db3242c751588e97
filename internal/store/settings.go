package store

import (
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"pomo/internal/timer"
)

func (s *Store) GetSetting(key string) (string, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if err != nil {
		return "", fmt.Errorf("get setting %q: %w", key, err)
	}
	return value, nil
}

func (s *Store) SetSetting(key, value string) error {
	_, err := s.db.Exec(
		`INSERT INTO settings (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	return err
}

func (s *Store) GetAllSettings() ([]Setting, error) {
	rows, err := s.db.Query(`SELECT key, value FROM settings ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("list settings: %w", err)
	}
	defer rows.Close()

	var settings []Setting
	for rows.Next() {
		var s Setting
		if err := rows.Scan(&s.Key, &s.Value); err != nil {
			return nil, err
		}
		settings = append(settings, s)
	}
	return settings, rows.Err()
}

// LoadConfig reads the stored cycle configuration. Missing or malformed
// keys fall back to the hard-coded defaults; the result always validates.
func (s *Store) LoadConfig() (timer.Config, error) {
	cfg := timer.DefaultConfig()

	read := func(key string, dst *int) error {
		v, err := s.GetSetting(key)
		if errors.Is(err, sql.ErrNoRows) {
			return nil // keep default
		}
		if err != nil {
			return err
		}
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return nil // keep default
		}
		*dst = n
		return nil
	}

	for _, kv := range []struct {
		key string
		dst *int
	}{
		{"focus_minutes", &cfg.Focus},
		{"break_minutes", &cfg.Break},
		{"long_break_minutes", &cfg.LongBreak},
		{"cycles", &cfg.Cycles},
	} {
		if err := read(kv.key, kv.dst); err != nil {
			return timer.DefaultConfig(), fmt.Errorf("load config: %w", err)
		}
	}
	return cfg, nil
}

// SaveConfig persists the effective cycle configuration so it becomes the
// default for the next run.
func (s *Store) SaveConfig(cfg timer.Config) error {
	for _, kv := range []struct {
		key string
		val int
	}{
		{"focus_minutes", cfg.Focus},
		{"break_minutes", cfg.Break},
		{"long_break_minutes", cfg.LongBreak},
		{"cycles", cfg.Cycles},
	} {
		if err := s.SetSetting(kv.key, strconv.Itoa(kv.val)); err != nil {
			return fmt.Errorf("save config: %w", err)
		}
	}
	return nil
}
