package kv

import (
	"context"
	"database/sql"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPGStoreGet(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	store := NewPostgres(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT value FROM slots WHERE owner = $1 AND key = $2`)).
		WithArgs("user:ada@example.com", SlotResumeData).
		WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow(`{"name":"Ada"}`))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT value FROM slots`)).
		WithArgs("user:ada@example.com", SlotResumeDraft).
		WillReturnError(sql.ErrNoRows)

	got, err := store.Get(context.Background(), "user:ada@example.com", SlotResumeData)
	require.NoError(t, err)
	assert.Equal(t, `{"name":"Ada"}`, got)

	_, err = store.Get(context.Background(), "user:ada@example.com", SlotResumeDraft)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPGStorePutAndDelete(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	store := NewPostgres(db)

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO slots (owner, key, value, updated_at)`)).
		WithArgs("session:s1", SlotAuth, `{"state":{}}`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM slots WHERE owner = $1 AND key = $2`)).
		WithArgs("session:s1", SlotAuth).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, store.Put(context.Background(), "session:s1", SlotAuth, `{"state":{}}`))
	require.NoError(t, store.Delete(context.Background(), "session:s1", SlotAuth))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPGStoreWrapsDriverErrors(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT value FROM slots`)).
		WillReturnError(sql.ErrConnDone)

	_, err = NewPostgres(db).Get(context.Background(), "user:a@b.c", SlotResumeData)
	assert.ErrorIs(t, err, sql.ErrConnDone)
	assert.NotErrorIs(t, err, ErrNotFound)
}
