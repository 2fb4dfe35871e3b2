package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

func storageKey(key string) string {
	return KeyPrefix + key
}

// getRaw returns the stored text for key. ok is false when the key is
// absent or the read failed.
func (s *Store) getRaw(key string) (string, bool) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM kv WHERE key = ?`, storageKey(key)).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false
	}
	if err != nil {
		s.fail(fmt.Errorf("load %s: %w", key, err))
		return "", false
	}
	return value, true
}

// setRaw replaces the whole value for key in a single statement.
func (s *Store) setRaw(key, value string) {
	now := time.Now().UTC().Format(time.RFC3339)
	_, err := s.db.Exec(
		`INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		storageKey(key), value, now,
	)
	if err != nil {
		s.fail(fmt.Errorf("save %s: %w", key, err))
	}
}

func (s *Store) remove(key string) {
	if _, err := s.db.Exec(`DELETE FROM kv WHERE key = ?`, storageKey(key)); err != nil {
		s.fail(fmt.Errorf("remove %s: %w", key, err))
	}
}

// readCollection decodes the collection stored under key. Missing keys and
// unparseable values both yield an empty collection.
func readCollection[T any](s *Store, key string) []T {
	raw, ok := s.getRaw(key)
	if !ok {
		return []T{}
	}
	var items []T
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		s.fail(fmt.Errorf("parse %s: %w", key, err))
		return []T{}
	}
	if items == nil {
		items = []T{}
	}
	return items
}

func writeCollection[T any](s *Store, key string, items []T) {
	if items == nil {
		items = []T{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		s.fail(fmt.Errorf("encode %s: %w", key, err))
		return
	}
	s.setRaw(key, string(data))
}

// upsert replaces the element whose id matches item's, or appends it.
func upsert[T any](items []T, item T, id func(T) string) ([]T, bool) {
	for i := range items {
		if id(items[i]) == id(item) {
			items[i] = item
			return items, true
		}
	}
	return append(items, item), false
}

func without[T any](items []T, targetID string, id func(T) string) []T {
	kept := make([]T, 0, len(items))
	for _, it := range items {
		if id(it) != targetID {
			kept = append(kept, it)
		}
	}
	return kept
}
