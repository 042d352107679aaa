package memory

import (
	"context"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/kioskauth-server/internal/model"
)

var _ model.AttemptStore = (*AttemptRepository)(nil)

type AttemptRepository struct {
	db *DB
}

func NewAttemptRepository(db *DB) *AttemptRepository {
	return &AttemptRepository{
		db: db,
	}
}

func (r *AttemptRepository) Record(ctx context.Context, attempt model.Attempt) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if attempt.ID == uuid.Nil {
		attempt.ID = uuid.New()
	}
	if attempt.CreatedAt.IsZero() {
		attempt.CreatedAt = time.Now()
	}
	r.db.attempts = append(r.db.attempts, attempt)
	return nil
}

func (r *AttemptRepository) DeleteBefore(ctx context.Context, before time.Time) (int64, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	n := len(r.db.attempts)
	r.db.attempts = slices.DeleteFunc(r.db.attempts, func(a model.Attempt) bool {
		return a.CreatedAt.Before(before)
	})
	return int64(n - len(r.db.attempts)), nil
}

// List returns the recorded attempts oldest first.
func (r *AttemptRepository) List(ctx context.Context) ([]model.Attempt, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	return slices.Clone(r.db.attempts), nil
}
