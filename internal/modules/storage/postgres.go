package storage

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"
)

type postgresStore struct{ db *sql.DB }

// NewPostgres returns a Store backed by the kv_store table, creating it if needed.
func NewPostgres(ctx context.Context, db *sql.DB) (Store, error) {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS kv_store (
		  key        TEXT PRIMARY KEY,
		  value      BYTEA NOT NULL,
		  updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`)
	if err != nil {
		return nil, errors.Wrap(err, "storage: create kv_store")
	}
	return &postgresStore{db: db}, nil
}

func (p *postgresStore) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := p.db.QueryRowContext(ctx, `SELECT value FROM kv_store WHERE key=$1`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrapf(err, "storage: get %s", key)
	}
	return value, nil
}

func (p *postgresStore) Set(ctx context.Context, key string, value []byte) error {
	_, err := p.db.ExecContext(ctx, `
		INSERT INTO kv_store (key, value) VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value=EXCLUDED.value, updated_at=NOW()`,
		key, value)
	return errors.Wrapf(err, "storage: set %s", key)
}

func (p *postgresStore) Delete(ctx context.Context, key string) error {
	_, err := p.db.ExecContext(ctx, `DELETE FROM kv_store WHERE key=$1`, key)
	return errors.Wrapf(err, "storage: delete %s", key)
}
