package memory

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/kioskauth-server/internal/model"
	"github.com/dtroode/kioskauth-server/internal/testutil"
)

func TestAccountRepository_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	repo := NewAccountRepository(NewDB())

	saved, err := repo.Create(ctx, model.Account{DisplayName: "Ann", Role: model.RoleStudent})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, saved.ID)
	assert.Equal(t, model.AccountStatusActive, saved.Status)
	assert.False(t, saved.CreatedAt.IsZero())

	got, err := repo.GetByID(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ann", got.DisplayName)

	_, err = repo.Create(ctx, model.Account{ID: saved.ID})
	assert.ErrorIs(t, err, model.ErrAlreadyExists)

	_, err = repo.GetByID(ctx, uuid.New())
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestAccountRepository_ListCandidates(t *testing.T) {
	ctx := context.Background()
	repo := NewAccountRepository(NewDB())
	now := time.Now()

	mk := func(role model.Role, status model.AccountStatus, enrolled bool) uuid.UUID {
		acc, err := repo.Create(ctx, model.Account{Role: role, Status: status})
		require.NoError(t, err)
		if enrolled {
			require.NoError(t, repo.SetDescriptor(ctx, acc.ID, testutil.Descriptor(4, 1), now))
		}
		return acc.ID
	}

	first := mk(model.RoleStudent, model.AccountStatusActive, true)
	mk(model.RoleStudent, model.AccountStatusActive, false)
	mk(model.RoleStudent, model.AccountStatusInactive, true)
	mk(model.RoleTeacher, model.AccountStatusActive, true)
	second := mk(model.RoleStudent, model.AccountStatusActive, true)

	candidates, err := repo.ListCandidates(ctx, model.RoleStudent)
	require.NoError(t, err)
	require.Len(t, candidates, 2)
	assert.Equal(t, first, candidates[0].AccountID)
	assert.Equal(t, second, candidates[1].AccountID)

	// returned descriptors do not alias stored state
	candidates[0].Descriptor[0] = 99
	acc, err := repo.GetByID(ctx, first)
	require.NoError(t, err)
	assert.NotEqual(t, float32(99), acc.FaceDescriptor[0])
}

func TestAccountRepository_Descriptor(t *testing.T) {
	ctx := context.Background()
	repo := NewAccountRepository(NewDB())
	acc, err := repo.Create(ctx, model.Account{Role: model.RoleStudent})
	require.NoError(t, err)

	at := time.Now()
	d := testutil.Descriptor(model.DefaultDescriptorDimension, 0.5)
	require.NoError(t, repo.SetDescriptor(ctx, acc.ID, d, at))

	got, err := repo.GetByID(ctx, acc.ID)
	require.NoError(t, err)
	assert.Equal(t, d, got.FaceDescriptor)
	require.NotNil(t, got.EnrolledAt)
	assert.True(t, at.Equal(*got.EnrolledAt))

	require.NoError(t, repo.ClearDescriptor(ctx, acc.ID))
	got, err = repo.GetByID(ctx, acc.ID)
	require.NoError(t, err)
	assert.False(t, got.Enrolled())
	assert.Nil(t, got.EnrolledAt)

	assert.ErrorIs(t, repo.SetDescriptor(ctx, uuid.New(), d, at), model.ErrNotFound)
}

func TestAccountRepository_UpdateLoginState(t *testing.T) {
	ctx := context.Background()
	repo := NewAccountRepository(NewDB())
	acc, err := repo.Create(ctx, model.Account{Role: model.RoleStudent})
	require.NoError(t, err)

	state := acc.LoginState().Failed(time.Now(), model.DefaultLockoutPolicy())
	require.NoError(t, repo.UpdateLoginState(ctx, acc.ID, acc.LoginVersion, state))

	// the same expected version is now stale
	err = repo.UpdateLoginState(ctx, acc.ID, acc.LoginVersion, state)
	assert.ErrorIs(t, err, model.ErrVersionConflict)

	got, err := repo.GetByID(ctx, acc.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.LoginAttempts)
	assert.Equal(t, acc.LoginVersion+1, got.LoginVersion)
}

func TestAccountRepository_StatusAndDelete(t *testing.T) {
	ctx := context.Background()
	db := NewDB()
	repo := NewAccountRepository(db)
	terminals := NewTerminalRepository(db)

	acc, err := repo.Create(ctx, model.Account{Role: model.RoleStudent})
	require.NoError(t, err)
	term, err := terminals.Create(ctx, model.Terminal{HardwareID: "aa:bb:cc:dd:ee:ff"})
	require.NoError(t, err)
	require.NoError(t, terminals.Bind(ctx, acc.ID, term.ID))

	require.NoError(t, repo.SetStatus(ctx, acc.ID, model.AccountStatusInactive))
	got, err := repo.GetByID(ctx, acc.ID)
	require.NoError(t, err)
	assert.False(t, got.Active())

	require.NoError(t, repo.Delete(ctx, acc.ID))
	_, err = repo.GetByID(ctx, acc.ID)
	assert.ErrorIs(t, err, model.ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, acc.ID), model.ErrNotFound)
	assert.ErrorIs(t, terminals.Unbind(ctx, acc.ID, term.ID), model.ErrNotFound)
}
