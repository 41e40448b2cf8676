package credentials

import (
	"context"
	"database/sql"
	"errors"

	"stackadvisor-backend/internal/shared/util"
)

// PGStore implements Store using the credentials table.
type PGStore struct {
	DB *sql.DB
}

// NewPGStore constructs a Postgres-backed credential store.
func NewPGStore(db *sql.DB) *PGStore {
	return &PGStore{DB: db}
}

func (s *PGStore) Get(ctx context.Context, scope, key string) (string, error) {
	const query = `
SELECT value
FROM credentials
WHERE scope_hash = $1 AND name = $2
LIMIT 1`
	var value string
	err := s.DB.QueryRowContext(ctx, query, util.HashUserKey(scope), key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", err
	}
	return value, nil
}

func (s *PGStore) Set(ctx context.Context, scope, key, value string) error {
	const query = `
INSERT INTO credentials (scope_hash, name, value, created_at, updated_at)
VALUES ($1, $2, $3, now(), now())
ON CONFLICT (scope_hash, name) DO UPDATE SET
  value = EXCLUDED.value,
  updated_at = now()`
	_, err := s.DB.ExecContext(ctx, query, util.HashUserKey(scope), key, value)
	return err
}

func (s *PGStore) Delete(ctx context.Context, scope, key string) error {
	const query = `DELETE FROM credentials WHERE scope_hash = $1 AND name = $2`
	_, err := s.DB.ExecContext(ctx, query, util.HashUserKey(scope), key)
	return err
}
