package interview

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"
)

type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) Append(ctx context.Context, msgs ...Message) error {
	if len(msgs) == 0 {
		return nil
	}
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "begin append")
	}
	defer func() { _ = tx.Rollback() }()

	const query = `
INSERT INTO interview_messages (id, owner, role, text, created_at)
VALUES ($1, $2, $3, $4, $5)`
	for _, m := range msgs {
		if _, err := tx.ExecContext(ctx, query, m.ID, m.Owner, m.Role, m.Text, m.CreatedAt); err != nil {
			return errors.Wrap(err, "insert interview message")
		}
	}
	return errors.Wrap(tx.Commit(), "commit append")
}

func (r *PGRepo) Recent(ctx context.Context, owner string, limit int) ([]Message, error) {
	query := `
SELECT id, owner, role, text, created_at FROM (
  SELECT id, owner, role, text, created_at
  FROM interview_messages
  WHERE owner = $1
  ORDER BY created_at DESC, id DESC
  LIMIT $2
) recent
ORDER BY created_at ASC, id ASC`
	args := []any{owner, limit}
	if limit <= 0 {
		query = `
SELECT id, owner, role, text, created_at
FROM interview_messages
WHERE owner = $1
ORDER BY created_at ASC, id ASC`
		args = args[:1]
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "query interview messages")
	}
	defer rows.Close()

	out := []Message{}
	for rows.Next() {
		var m Message
		if err := rows.Scan(&m.ID, &m.Owner, &m.Role, &m.Text, &m.CreatedAt); err != nil {
			return nil, errors.Wrap(err, "scan interview message")
		}
		out = append(out, m)
	}
	return out, errors.Wrap(rows.Err(), "iterate interview messages")
}

func (r *PGRepo) Clear(ctx context.Context, owner string) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM interview_messages WHERE owner = $1`, owner)
	return errors.Wrap(err, "clear interview messages")
}
