package memory

import (
	"context"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/kioskauth-server/internal/model"
)

var _ model.AccountStore = (*AccountRepository)(nil)

type AccountRepository struct {
	db *DB
}

func NewAccountRepository(db *DB) *AccountRepository {
	return &AccountRepository{
		db: db,
	}
}

func (r *AccountRepository) Create(ctx context.Context, account model.Account) (model.Account, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if account.ID == uuid.Nil {
		account.ID = uuid.New()
	}
	if _, ok := r.db.accounts[account.ID]; ok {
		return model.Account{}, model.ErrAlreadyExists
	}
	if account.Status == "" {
		account.Status = model.AccountStatusActive
	}
	now := time.Now()
	if account.CreatedAt.IsZero() {
		account.CreatedAt = now
	}
	account.UpdatedAt = now
	account.FaceDescriptor = account.FaceDescriptor.Clone()
	account.BoundTerminalIDs = nil

	r.db.accounts[account.ID] = account
	r.db.accountOrder = append(r.db.accountOrder, account.ID)

	saved, _ := r.db.account(account.ID)
	return saved, nil
}

func (r *AccountRepository) GetByID(ctx context.Context, id uuid.UUID) (model.Account, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	acc, ok := r.db.account(id)
	if !ok {
		return model.Account{}, model.ErrNotFound
	}
	return acc, nil
}

// ListCandidates returns active enrolled accounts of role in creation order.
func (r *AccountRepository) ListCandidates(ctx context.Context, role model.Role) ([]model.Candidate, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	var candidates []model.Candidate
	for _, id := range r.db.accountOrder {
		acc := r.db.accounts[id]
		if acc.Role != role || !acc.Active() || !acc.Enrolled() {
			continue
		}
		candidates = append(candidates, model.Candidate{
			AccountID:  acc.ID,
			Descriptor: acc.FaceDescriptor.Clone(),
		})
	}
	return candidates, nil
}

func (r *AccountRepository) SetDescriptor(ctx context.Context, id uuid.UUID, descriptor model.Descriptor, enrolledAt time.Time) error {
	return r.update(id, func(acc *model.Account) error {
		acc.FaceDescriptor = descriptor.Clone()
		acc.EnrolledAt = &enrolledAt
		return nil
	})
}

func (r *AccountRepository) ClearDescriptor(ctx context.Context, id uuid.UUID) error {
	return r.update(id, func(acc *model.Account) error {
		acc.FaceDescriptor = nil
		acc.EnrolledAt = nil
		return nil
	})
}

func (r *AccountRepository) UpdateLoginState(ctx context.Context, id uuid.UUID, expectedVersion int64, state model.LoginState) error {
	return r.update(id, func(acc *model.Account) error {
		if acc.LoginVersion != expectedVersion {
			return model.ErrVersionConflict
		}
		acc.LoginAttempts = state.Attempts
		acc.LockUntil = state.LockUntil
		acc.LastLogin = state.LastLogin
		acc.LoginVersion++
		return nil
	})
}

func (r *AccountRepository) SetStatus(ctx context.Context, id uuid.UUID, status model.AccountStatus) error {
	return r.update(id, func(acc *model.Account) error {
		acc.Status = status
		return nil
	})
}

func (r *AccountRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.accounts[id]; !ok {
		return model.ErrNotFound
	}
	delete(r.db.accounts, id)
	delete(r.db.bindings, id)
	r.db.accountOrder = slices.DeleteFunc(r.db.accountOrder, func(v uuid.UUID) bool {
		return v == id
	})
	return nil
}

func (r *AccountRepository) update(id uuid.UUID, fn func(acc *model.Account) error) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	acc, ok := r.db.accounts[id]
	if !ok {
		return model.ErrNotFound
	}
	if err := fn(&acc); err != nil {
		return err
	}
	acc.UpdatedAt = time.Now()
	r.db.accounts[id] = acc
	return nil
}
