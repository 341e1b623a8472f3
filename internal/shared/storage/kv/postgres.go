package kv

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"
)

// PGStore keeps slots in the slots table.
type PGStore struct {
	DB *sql.DB
}

// NewPostgres wraps an open database.
func NewPostgres(db *sql.DB) *PGStore {
	return &PGStore{DB: db}
}

func (s *PGStore) Get(ctx context.Context, owner, key string) (string, error) {
	if err := validate(owner, key); err != nil {
		return "", err
	}
	var value string
	err := s.DB.QueryRowContext(ctx, `SELECT value FROM slots WHERE owner = $1 AND key = $2`, owner, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", errors.Wrap(err, "select slot")
	}
	return value, nil
}

func (s *PGStore) Put(ctx context.Context, owner, key, value string) error {
	if err := validate(owner, key); err != nil {
		return err
	}
	_, err := s.DB.ExecContext(ctx, `
INSERT INTO slots (owner, key, value, updated_at)
VALUES ($1, $2, $3, now())
ON CONFLICT (owner, key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`, owner, key, value)
	return errors.Wrap(err, "upsert slot")
}

func (s *PGStore) Delete(ctx context.Context, owner, key string) error {
	if err := validate(owner, key); err != nil {
		return err
	}
	_, err := s.DB.ExecContext(ctx, `DELETE FROM slots WHERE owner = $1 AND key = $2`, owner, key)
	return errors.Wrap(err, "delete slot")
}

var _ Store = (*PGStore)(nil)
