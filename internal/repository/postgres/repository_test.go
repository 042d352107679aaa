package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRepositories(t *testing.T) {
	db := &Connection{}

	assert.Equal(t, db, NewAccountRepository(db).db)
	assert.Equal(t, db, NewTerminalRepository(db).db)
	assert.Equal(t, db, NewAttemptRepository(db).db)
}

func TestConnection_NilPool(t *testing.T) {
	c := &Connection{}
	assert.NoError(t, c.Close())
	assert.Error(t, c.Ping(t.Context()))
}

func TestParseIDs(t *testing.T) {
	a, b := uuid.New(), uuid.New()

	ids, err := parseIDs([]string{a.String(), b.String()})
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{a, b}, ids)

	ids, err = parseIDs(nil)
	require.NoError(t, err)
	assert.Nil(t, ids)

	_, err = parseIDs([]string{"not-a-uuid"})
	assert.ErrorContains(t, err, "failed to parse terminal id")
}

func TestPgErrorCode(t *testing.T) {
	wrapped := fmt.Errorf("insert: %w", &pgconn.PgError{Code: uniqueViolation})

	assert.Equal(t, uniqueViolation, pgErrorCode(wrapped))
	assert.Equal(t, "", pgErrorCode(errors.New("plain")))
}
