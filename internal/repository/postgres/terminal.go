package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dtroode/kioskauth-server/internal/model"
)

var _ model.TerminalStore = (*TerminalRepository)(nil)

type TerminalRepository struct {
	db *Connection
}

func NewTerminalRepository(db *Connection) *TerminalRepository {
	return &TerminalRepository{
		db: db,
	}
}

func (r *TerminalRepository) Create(ctx context.Context, terminal model.Terminal) (model.Terminal, error) {
	if terminal.ID == uuid.Nil {
		terminal.ID = uuid.New()
	}
	if terminal.CreatedAt.IsZero() {
		terminal.CreatedAt = time.Now()
	}

	query := `INSERT INTO terminals (id, hardware_id, home_id, created_at)
			  VALUES ($1, $2, $3, $4)
			  RETURNING id, hardware_id, home_id, created_at`

	var saved model.Terminal
	err := r.db.QueryRow(ctx, query, terminal.ID, terminal.HardwareID, terminal.HomeID, terminal.CreatedAt).
		Scan(&saved.ID, &saved.HardwareID, &saved.HomeID, &saved.CreatedAt)
	if err != nil {
		if pgErrorCode(err) == uniqueViolation {
			return model.Terminal{}, model.ErrAlreadyExists
		}
		return model.Terminal{}, fmt.Errorf("failed to create terminal: %w", err)
	}
	return saved, nil
}

func (r *TerminalRepository) GetByID(ctx context.Context, id uuid.UUID) (model.Terminal, error) {
	return r.get(ctx, `SELECT id, hardware_id, home_id, created_at FROM terminals WHERE id = $1`, id)
}

func (r *TerminalRepository) GetByHardwareID(ctx context.Context, hardwareID string) (model.Terminal, error) {
	return r.get(ctx, `SELECT id, hardware_id, home_id, created_at FROM terminals WHERE hardware_id = $1`, hardwareID)
}

func (r *TerminalRepository) get(ctx context.Context, query string, arg any) (model.Terminal, error) {
	var t model.Terminal
	err := r.db.QueryRow(ctx, query, arg).Scan(&t.ID, &t.HardwareID, &t.HomeID, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Terminal{}, model.ErrNotFound
		}
		return model.Terminal{}, fmt.Errorf("failed to get terminal: %w", err)
	}
	return t, nil
}

// Bind is idempotent. A missing account or terminal yields ErrNotFound.
func (r *TerminalRepository) Bind(ctx context.Context, accountID, terminalID uuid.UUID) error {
	query := `INSERT INTO account_terminals (account_id, terminal_id) VALUES ($1, $2)
			  ON CONFLICT (account_id, terminal_id) DO NOTHING`

	if _, err := r.db.Exec(ctx, query, accountID, terminalID); err != nil {
		if pgErrorCode(err) == foreignKeyViolation {
			return model.ErrNotFound
		}
		return fmt.Errorf("failed to bind terminal: %w", err)
	}
	return nil
}

func (r *TerminalRepository) Unbind(ctx context.Context, accountID, terminalID uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM account_terminals WHERE account_id = $1 AND terminal_id = $2`, accountID, terminalID)
	if err != nil {
		return fmt.Errorf("failed to unbind terminal: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}
