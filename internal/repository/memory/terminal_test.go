package memory

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/kioskauth-server/internal/model"
)

func TestTerminalRepository(t *testing.T) {
	ctx := context.Background()
	db := NewDB()
	accounts := NewAccountRepository(db)
	repo := NewTerminalRepository(db)

	acc, err := accounts.Create(ctx, model.Account{Role: model.RoleStudent})
	require.NoError(t, err)

	t1, err := repo.Create(ctx, model.Terminal{HardwareID: "00:11:22:33:44:55", HomeID: "lab-1"})
	require.NoError(t, err)
	t2, err := repo.Create(ctx, model.Terminal{HardwareID: "00:11:22:33:44:66", HomeID: "lab-2"})
	require.NoError(t, err)

	_, err = repo.Create(ctx, model.Terminal{HardwareID: t1.HardwareID})
	assert.ErrorIs(t, err, model.ErrAlreadyExists)

	byHW, err := repo.GetByHardwareID(ctx, t1.HardwareID)
	require.NoError(t, err)
	assert.Equal(t, t1.ID, byHW.ID)

	_, err = repo.GetByHardwareID(ctx, "ff:ff:ff:ff:ff:ff")
	assert.ErrorIs(t, err, model.ErrNotFound)

	require.NoError(t, repo.Bind(ctx, acc.ID, t1.ID))
	require.NoError(t, repo.Bind(ctx, acc.ID, t1.ID))
	require.NoError(t, repo.Bind(ctx, acc.ID, t2.ID))
	assert.ErrorIs(t, repo.Bind(ctx, uuid.New(), t1.ID), model.ErrNotFound)
	assert.ErrorIs(t, repo.Bind(ctx, acc.ID, uuid.New()), model.ErrNotFound)

	got, err := accounts.GetByID(ctx, acc.ID)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{t1.ID, t2.ID}, got.BoundTerminalIDs)

	require.NoError(t, repo.Unbind(ctx, acc.ID, t1.ID))
	assert.ErrorIs(t, repo.Unbind(ctx, acc.ID, t1.ID), model.ErrNotFound)

	got, err = accounts.GetByID(ctx, acc.ID)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{t2.ID}, got.BoundTerminalIDs)
}

func TestAttemptRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewAttemptRepository(NewDB())
	now := time.Now()

	require.NoError(t, repo.Record(ctx, model.Attempt{Outcome: model.AttemptOutcomeSuccess, CreatedAt: now.Add(-48 * time.Hour)}))
	require.NoError(t, repo.Record(ctx, model.Attempt{Outcome: model.AttemptOutcome(model.KindUnmatched)}))

	deleted, err := repo.DeleteBefore(ctx, now.Add(-24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	left, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, left, 1)
	assert.Equal(t, model.AttemptOutcome(model.KindUnmatched), left[0].Outcome)
	assert.NotEqual(t, uuid.Nil, left[0].ID)
}
