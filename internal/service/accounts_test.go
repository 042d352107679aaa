package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/kioskauth-server/internal/mocks"
	"github.com/dtroode/kioskauth-server/internal/model"
	"github.com/dtroode/kioskauth-server/internal/testutil"
)

func TestAccounts_Create(t *testing.T) {
	store := &mocks.AccountStore{}
	store.On("Create", mock.Anything, mock.MatchedBy(func(a model.Account) bool {
		return a.DisplayName == "Ann" && a.Role == model.RoleStudent && a.Status == model.AccountStatusActive && a.ID != uuid.Nil
	})).Return(func(_ context.Context, a model.Account) (model.Account, error) {
		return a, nil
	})

	svc := NewAccounts(store, &mocks.TerminalStore{}, &fakeIndex{}, nil, testutil.MakeNoopLogger())

	acc, err := svc.Create(context.Background(), CreateAccountRequest{DisplayName: "Ann", Role: model.RoleStudent})
	require.NoError(t, err)
	assert.Equal(t, "Ann", acc.DisplayName)

	_, err = svc.Create(context.Background(), CreateAccountRequest{DisplayName: "Ann", Role: "janitor"})
	assert.ErrorIs(t, err, model.ErrInvalidRequest)
}

func TestAccounts_RegisterTerminal_NormalizesHardwareID(t *testing.T) {
	terminals := &mocks.TerminalStore{}
	terminals.On("Create", mock.Anything, mock.MatchedBy(func(term model.Terminal) bool {
		return term.HardwareID == "aa:bb:cc:dd:ee:ff" && term.HomeID == "library"
	})).Return(func(_ context.Context, term model.Terminal) (model.Terminal, error) {
		return term, nil
	}).Once()

	svc := NewAccounts(&mocks.AccountStore{}, terminals, &fakeIndex{}, nil, testutil.MakeNoopLogger())

	term, err := svc.RegisterTerminal(context.Background(), RegisterTerminalRequest{HardwareID: "AA-BB-CC-DD-EE-FF", HomeID: "library"})
	require.NoError(t, err)
	assert.Equal(t, "aa:bb:cc:dd:ee:ff", term.HardwareID)
	terminals.AssertExpectations(t)

	_, err = svc.RegisterTerminal(context.Background(), RegisterTerminalRequest{})
	assert.ErrorIs(t, err, model.ErrInvalidRequest)
}

func TestAccounts_BindUnbind(t *testing.T) {
	ctx := context.Background()
	terminals := &mocks.TerminalStore{}
	accountID, terminalID := uuid.New(), uuid.New()

	terminals.On("Bind", mock.Anything, accountID, terminalID).Return(nil).Once()
	terminals.On("Unbind", mock.Anything, accountID, terminalID).Return(model.ErrNotFound).Once()

	svc := NewAccounts(&mocks.AccountStore{}, terminals, &fakeIndex{}, nil, testutil.MakeNoopLogger())
	require.NoError(t, svc.BindTerminal(ctx, accountID, terminalID))
	assert.ErrorIs(t, svc.UnbindTerminal(ctx, accountID, terminalID), model.ErrNotFound)
}

func TestAccounts_SetStatus(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	t.Run("deactivation removes from index", func(t *testing.T) {
		store := &mocks.AccountStore{}
		index := &fakeIndex{}
		store.On("SetStatus", mock.Anything, id, model.AccountStatusInactive).Return(nil)

		svc := NewAccounts(store, &mocks.TerminalStore{}, index, nil, testutil.MakeNoopLogger())
		require.NoError(t, svc.SetStatus(ctx, id, model.AccountStatusInactive))
		assert.Equal(t, []uuid.UUID{id}, index.removed)
		assert.Equal(t, 1, index.invalidated)
	})

	t.Run("activation refreshes index", func(t *testing.T) {
		store := &mocks.AccountStore{}
		index := &fakeIndex{}
		store.On("SetStatus", mock.Anything, id, model.AccountStatusActive).Return(nil)

		svc := NewAccounts(store, &mocks.TerminalStore{}, index, nil, testutil.MakeNoopLogger())
		require.NoError(t, svc.SetStatus(ctx, id, model.AccountStatusActive))
		assert.Empty(t, index.removed)
		assert.Equal(t, 1, index.invalidated)
	})

	t.Run("unknown status", func(t *testing.T) {
		svc := NewAccounts(&mocks.AccountStore{}, &mocks.TerminalStore{}, &fakeIndex{}, nil, testutil.MakeNoopLogger())
		assert.ErrorIs(t, svc.SetStatus(ctx, id, "frozen"), model.ErrInvalidRequest)
	})

	t.Run("store failure keeps index", func(t *testing.T) {
		store := &mocks.AccountStore{}
		index := &fakeIndex{}
		store.On("SetStatus", mock.Anything, id, model.AccountStatusInactive).Return(errors.New("db down"))

		svc := NewAccounts(store, &mocks.TerminalStore{}, index, nil, testutil.MakeNoopLogger())
		require.Error(t, svc.SetStatus(ctx, id, model.AccountStatusInactive))
		assert.Empty(t, index.removed)
	})
}

func TestAccounts_Delete(t *testing.T) {
	ctx := context.Background()
	store := &mocks.AccountStore{}
	index := &fakeIndex{}
	id := uuid.New()
	store.On("Delete", mock.Anything, id).Return(nil).Once()

	svc := NewAccounts(store, &mocks.TerminalStore{}, index, nil, testutil.MakeNoopLogger())
	require.NoError(t, svc.Delete(ctx, id))
	assert.Equal(t, []uuid.UUID{id}, index.removed)
	assert.Equal(t, 1, index.invalidated)
}

func TestAccounts_Delete_PurgesCaptures(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()
	key := EnrollmentImageKey(id, newFakeClock().Now())

	t.Run("captures removed with the account", func(t *testing.T) {
		store := &mocks.AccountStore{}
		archive := &mocks.Storage{}
		store.On("Delete", mock.Anything, id).Return(nil).Once()
		archive.On("List", mock.Anything, "enrollments/"+id.String()+"/").Return([]string{key}, nil).Once()
		archive.On("Delete", mock.Anything, key).Return(nil).Once()

		log := testutil.MakeNoopLogger()
		svc := NewAccounts(store, &mocks.TerminalStore{}, &fakeIndex{}, NewCaptureArchive(archive, log), log)
		require.NoError(t, svc.Delete(ctx, id))
		archive.AssertExpectations(t)
		store.AssertExpectations(t)
	})

	t.Run("account kept when the archive fails", func(t *testing.T) {
		store := &mocks.AccountStore{}
		archive := &mocks.Storage{}
		index := &fakeIndex{}
		archive.On("List", mock.Anything, mock.Anything).Return(nil, errors.New("unreachable"))

		log := testutil.MakeNoopLogger()
		svc := NewAccounts(store, &mocks.TerminalStore{}, index, NewCaptureArchive(archive, log), log)
		err := svc.Delete(ctx, id)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to delete captures")
		assert.Empty(t, index.removed)
		store.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}

func TestAccounts_Profile(t *testing.T) {
	store := &mocks.AccountStore{}
	acc := model.Account{ID: uuid.New(), DisplayName: "Ann", Role: model.RoleStudent, Status: model.AccountStatusActive, FaceDescriptor: model.Descriptor{1}}
	store.On("GetByID", mock.Anything, acc.ID).Return(acc, nil)

	svc := NewAccounts(store, &mocks.TerminalStore{}, &fakeIndex{}, nil, testutil.MakeNoopLogger())
	p, err := svc.Profile(context.Background(), acc.ID)
	require.NoError(t, err)
	assert.Equal(t, acc.Profile(), p)
}
