package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/kioskauth-server/internal/model"
)

var _ model.AttemptStore = (*AttemptRepository)(nil)

type AttemptRepository struct {
	db *Connection
}

func NewAttemptRepository(db *Connection) *AttemptRepository {
	return &AttemptRepository{
		db: db,
	}
}

func (r *AttemptRepository) Record(ctx context.Context, attempt model.Attempt) error {
	if attempt.ID == uuid.Nil {
		attempt.ID = uuid.New()
	}
	if attempt.CreatedAt.IsZero() {
		attempt.CreatedAt = time.Now()
	}

	query := `INSERT INTO login_attempts (id, hardware_id, account_id, outcome, distance, created_at)
			  VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.db.Exec(ctx, query,
		attempt.ID, attempt.HardwareID, attempt.AccountID, attempt.Outcome, attempt.Distance, attempt.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to record attempt: %w", err)
	}
	return nil
}

func (r *AttemptRepository) DeleteBefore(ctx context.Context, before time.Time) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM login_attempts WHERE created_at < $1`, before)
	if err != nil {
		return 0, fmt.Errorf("failed to delete attempts: %w", err)
	}
	return tag.RowsAffected(), nil
}
