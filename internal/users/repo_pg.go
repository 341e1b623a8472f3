package users

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"
)

type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) RecordLogin(ctx context.Context, user User) error {
	const query = `
INSERT INTO users (email, name, provider, created_at, last_login_at)
VALUES ($1, $2, $3, now(), now())
ON CONFLICT (email) DO UPDATE SET
  name = COALESCE(EXCLUDED.name, users.name),
  provider = EXCLUDED.provider,
  last_login_at = now()`
	_, err := r.DB.ExecContext(ctx, query, user.Email, nullableString(user.Name), user.Provider)
	return errors.Wrap(err, "record login")
}

func (r *PGRepo) Get(ctx context.Context, email string) (User, error) {
	const query = `
SELECT email, name, provider, created_at, last_login_at
FROM users
WHERE email = $1
LIMIT 1`
	var user User
	var name sql.NullString
	err := r.DB.QueryRowContext(ctx, query, email).Scan(
		&user.Email,
		&name,
		&user.Provider,
		&user.CreatedAt,
		&user.LastLoginAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return User{}, ErrNotFound
		}
		return User{}, errors.Wrap(err, "load user")
	}
	if name.Valid {
		user.Name = name.String
	}
	return user, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}
