package kv

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostgres_Get(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	store := NewPostgres(mock)

	mock.ExpectQuery(regexp.QuoteMeta(pgGetQuery)).
		WithArgs("departments").
		WillReturnRows(pgxmock.NewRows([]string{"value"}).AddRow(`["HR"]`))

	v, ok, err := store.Get(context.Background(), "departments")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `["HR"]`, v)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_GetMissing(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	store := NewPostgres(mock)

	mock.ExpectQuery(regexp.QuoteMeta(pgGetQuery)).
		WithArgs("user").
		WillReturnError(pgx.ErrNoRows)

	_, ok, err := store.Get(context.Background(), "user")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_SetAndRemove(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	store := NewPostgres(mock)

	mock.ExpectExec(regexp.QuoteMeta(pgSetQuery)).
		WithArgs("isAdmin", "true").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec(regexp.QuoteMeta(pgRemoveQuery)).
		WithArgs("isAdmin").
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	require.NoError(t, store.Set(context.Background(), "isAdmin", "true"))
	require.NoError(t, store.Remove(context.Background(), "isAdmin"))

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_SetError(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	store := NewPostgres(mock)
	dbErr := errors.New("connection reset")

	mock.ExpectExec(regexp.QuoteMeta(pgSetQuery)).
		WithArgs("employees", "[]").
		WillReturnError(dbErr)

	err = store.Set(context.Background(), "employees", "[]")
	assert.ErrorIs(t, err, dbErr)

	require.NoError(t, mock.ExpectationsWereMet())
}
