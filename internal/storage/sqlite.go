package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"

	"github.com/sethfiresaid-gif/Book-Libary-Arc-Crusade/internal/dbx"
	"github.com/sethfiresaid-gif/Book-Libary-Arc-Crusade/internal/storage/migrations"
)

// DefaultQuota is the capacity of the fallback store. The store refuses
// writes that would push the total payload past this limit, so callers
// must compact documents before saving here.
const DefaultQuota int64 = 5 * 1024 * 1024

// SQLiteStore is the quota-bound fallback store. Simple key/value rows,
// one transaction per operation.
type SQLiteStore struct {
	db    *sql.DB
	quota int64
}

// OpenSQLite opens the fallback store at dsn and runs migrations.
// A quota of 0 selects DefaultQuota.
func OpenSQLite(ctx context.Context, dsn string, quota int64) (*SQLiteStore, error) {
	if quota <= 0 {
		quota = DefaultQuota
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: open sqlite: %v", ErrUnavailable, err)
	}
	// modernc sqlite is single-writer; serializing through one conn avoids
	// SQLITE_BUSY under concurrent autosave and integrity sweeps.
	db.SetMaxOpenConns(1)

	if err := runMigrations(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: migrate sqlite: %v", ErrUnavailable, err)
	}

	return &SQLiteStore{db: db, quota: quota}, nil
}

func runMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return err
	}
	return goose.UpContext(ctx, db, ".")
}

func (s *SQLiteStore) Name() string { return "sqlite" }

// Quota returns the configured capacity in bytes.
func (s *SQLiteStore) Quota() int64 { return s.quota }

func (s *SQLiteStore) Save(ctx context.Context, key string, value []byte) error {
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		var used int64
		row := tx.QueryRowContext(ctx,
			"SELECT COALESCE(SUM(LENGTH(key)+LENGTH(value)), 0) FROM kv WHERE key <> ?", key)
		if err := row.Scan(&used); err != nil {
			return err
		}
		if used+int64(len(key)+len(value)) > s.quota {
			return fmt.Errorf("%w: %d bytes over %d byte limit",
				ErrQuotaExceeded, used+int64(len(key)+len(value))-s.quota, s.quota)
		}
		_, err := tx.ExecContext(ctx,
			`INSERT INTO kv (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
			 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
			key, value)
		return err
	})
	if err != nil {
		if errors.Is(err, ErrQuotaExceeded) {
			return err
		}
		return fmt.Errorf("sqlite save %s: %w", key, err)
	}
	return nil
}

func (s *SQLiteStore) Load(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	row := s.db.QueryRowContext(ctx, "SELECT value FROM kv WHERE key = ?", key)
	err := row.Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("sqlite load %s: %w", key, err)
	}
	return value, nil
}

func (s *SQLiteStore) Delete(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM kv WHERE key = ?", key)
	if err != nil {
		return fmt.Errorf("sqlite delete %s: %w", key, err)
	}
	return nil
}

func (s *SQLiteStore) Close() error { return s.db.Close() }

// Used reports the byte total of all stored keys and values.
func (s *SQLiteStore) Used(ctx context.Context) (int64, error) {
	var used int64
	row := s.db.QueryRowContext(ctx,
		"SELECT COALESCE(SUM(LENGTH(key)+LENGTH(value)), 0) FROM kv")
	if err := row.Scan(&used); err != nil {
		return 0, fmt.Errorf("sqlite usage: %w", err)
	}
	return used, nil
}
