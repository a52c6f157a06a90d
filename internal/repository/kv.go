package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"learnmate/internal/database"
)

// KV is the persisted string key-value slot every repository is built on
type KV interface {
	// Get returns the value for key and whether it was present
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	// All returns every entry in the store
	All(ctx context.Context) (map[string]string, error)
	// ReplaceAll atomically swaps the whole store for entries
	ReplaceAll(ctx context.Context, entries map[string]string) error
}

// SQLKV stores entries in the kv_entries table
type SQLKV struct {
	db *database.DB
}

func NewSQLKV(db *database.DB) *SQLKV {
	return &SQLKV{db: db}
}

func (s *SQLKV) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT entry_value FROM kv_entries WHERE entry_key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return value, true, nil
}

func (s *SQLKV) Set(ctx context.Context, key, value string) error {
	return upsert(ctx, s.db, key, value)
}

func (s *SQLKV) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM kv_entries WHERE entry_key = ?`, key); err != nil {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}

func (s *SQLKV) All(ctx context.Context) (map[string]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT entry_key, entry_value FROM kv_entries`)
	if err != nil {
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}
	defer rows.Close()

	entries := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, err
		}
		entries[key] = value
	}
	return entries, rows.Err()
}

func (s *SQLKV) ReplaceAll(ctx context.Context, entries map[string]string) error {
	return s.db.WithTx(ctx, func(tx *database.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM kv_entries`); err != nil {
			return fmt.Errorf("failed to clear entries: %w", err)
		}
		for key, value := range entries {
			if err := upsert(ctx, tx, key, value); err != nil {
				return err
			}
		}
		return nil
	})
}

func upsert(ctx context.Context, db database.DBTX, key, value string) error {
	if _, err := db.ExecContext(ctx, db.GetDialect().UpsertKV(), key, value); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

// ErrCorruptValue is returned when a stored JSON value cannot be decoded
var ErrCorruptValue = errors.New("stored value is corrupt")

// getJSON decodes the value at key into dst and reports false when the key is
// absent. Malformed JSON is an error so callers never overwrite data they
// could not read.
func getJSON(ctx context.Context, kv KV, key string, dst interface{}) (bool, error) {
	raw, ok, err := kv.Get(ctx, key)
	if err != nil || !ok {
		return false, err
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		return false, fmt.Errorf("failed to decode %s: %w: %v", key, ErrCorruptValue, err)
	}
	return true, nil
}

// getJSONLenient is getJSON for disposable values: malformed JSON reads as absent
func getJSONLenient(ctx context.Context, kv KV, key string, dst interface{}) (bool, error) {
	ok, err := getJSON(ctx, kv, key, dst)
	if errors.Is(err, ErrCorruptValue) {
		return false, nil
	}
	return ok, err
}

func setJSON(ctx context.Context, kv KV, key string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	return kv.Set(ctx, key, string(data))
}
