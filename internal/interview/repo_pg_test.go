package interview

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPGRepoAppendRunsInTransaction(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := &PGRepo{DB: db}
	at := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO interview_messages")).
		WithArgs("m1", "u", RoleUser, "Go developer", at).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO interview_messages")).
		WithArgs("m2", "u", RoleAI, "Why Go?", at.Add(time.Second)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err = repo.Append(context.Background(),
		Message{ID: "m1", Owner: "u", Role: RoleUser, Text: "Go developer", CreatedAt: at},
		Message{ID: "m2", Owner: "u", Role: RoleAI, Text: "Why Go?", CreatedAt: at.Add(time.Second)},
	)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPGRepoRecentLimitsAndOrders(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := &PGRepo{DB: db}
	at := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	cols := []string{"id", "owner", "role", "text", "created_at"}

	mock.ExpectQuery(regexp.QuoteMeta("LIMIT $2")).
		WithArgs("u", 10).
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow("m1", "u", RoleUser, "Go developer", at).
			AddRow("m2", "u", RoleAI, "Why Go?", at.Add(time.Second)))
	msgs, err := repo.Recent(context.Background(), "u", 10)
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, "Why Go?", msgs[1].Text)

	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY created_at ASC, id ASC")).
		WithArgs("nobody").
		WillReturnRows(sqlmock.NewRows(cols))
	msgs, err = repo.Recent(context.Background(), "nobody", 0)
	require.NoError(t, err)
	assert.NotNil(t, msgs)
	assert.Empty(t, msgs)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM interview_messages WHERE owner = $1")).
		WithArgs("u").
		WillReturnResult(sqlmock.NewResult(0, 2))
	require.NoError(t, repo.Clear(context.Background(), "u"))

	require.NoError(t, mock.ExpectationsWereMet())
}
