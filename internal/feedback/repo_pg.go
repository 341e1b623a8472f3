package feedback

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"
)

type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) SaveContact(ctx context.Context, c Contact) error {
	const query = `
INSERT INTO contact_messages (id, name, email, subject, message, created_at)
VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.DB.ExecContext(ctx, query, c.ID, c.Name, c.Email, c.Subject, c.Message, c.CreatedAt)
	return errors.Wrap(err, "insert contact message")
}

func (r *PGRepo) SaveFeedback(ctx context.Context, f Feedback) error {
	const query = `
INSERT INTO feedback (id, name, email, rating, feedback, created_at)
VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.DB.ExecContext(ctx, query, f.ID, f.Name, f.Email, f.Rating, f.Feedback, f.CreatedAt)
	return errors.Wrap(err, "insert feedback")
}
