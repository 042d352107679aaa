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

var _ model.AccountStore = (*AccountRepository)(nil)

type AccountRepository struct {
	db *Connection
}

func NewAccountRepository(db *Connection) *AccountRepository {
	return &AccountRepository{
		db: db,
	}
}

const accountColumns = `a.id, a.display_name, a.role, a.status, a.face_descriptor, a.enrolled_at,
	a.login_attempts, a.lock_until, a.last_login, a.login_version, a.created_at, a.updated_at,
	COALESCE(array_agg(atm.terminal_id::text) FILTER (WHERE atm.terminal_id IS NOT NULL), '{}')`

func scanAccount(row pgx.Row) (model.Account, error) {
	var (
		acc        model.Account
		descriptor []float32
		terminals  []string
	)
	err := row.Scan(
		&acc.ID, &acc.DisplayName, &acc.Role, &acc.Status, &descriptor, &acc.EnrolledAt,
		&acc.LoginAttempts, &acc.LockUntil, &acc.LastLogin, &acc.LoginVersion, &acc.CreatedAt, &acc.UpdatedAt,
		&terminals,
	)
	if err != nil {
		return model.Account{}, err
	}
	if len(descriptor) > 0 {
		acc.FaceDescriptor = descriptor
	}

	acc.BoundTerminalIDs, err = parseIDs(terminals)
	if err != nil {
		return model.Account{}, err
	}
	return acc, nil
}

func parseIDs(raw []string) ([]uuid.UUID, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	ids := make([]uuid.UUID, 0, len(raw))
	for _, s := range raw {
		id, err := uuid.Parse(s)
		if err != nil {
			return nil, fmt.Errorf("failed to parse terminal id %q: %w", s, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func (r *AccountRepository) Create(ctx context.Context, account model.Account) (model.Account, error) {
	if account.ID == uuid.Nil {
		account.ID = uuid.New()
	}
	if account.Status == "" {
		account.Status = model.AccountStatusActive
	}
	if account.CreatedAt.IsZero() {
		account.CreatedAt = time.Now()
	}
	var descriptor any
	if account.Enrolled() {
		descriptor = []float32(account.FaceDescriptor)
	}

	query := `INSERT INTO accounts (id, display_name, role, status, face_descriptor, enrolled_at, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $7)`

	_, err := r.db.Exec(ctx, query,
		account.ID, account.DisplayName, account.Role, account.Status, descriptor, account.EnrolledAt, account.CreatedAt,
	)
	if err != nil {
		if pgErrorCode(err) == uniqueViolation {
			return model.Account{}, model.ErrAlreadyExists
		}
		return model.Account{}, fmt.Errorf("failed to create account: %w", err)
	}

	return r.GetByID(ctx, account.ID)
}

func (r *AccountRepository) GetByID(ctx context.Context, id uuid.UUID) (model.Account, error) {
	query := `SELECT ` + accountColumns + `
			  FROM accounts a
			  LEFT JOIN account_terminals atm ON atm.account_id = a.id
			  WHERE a.id = $1
			  GROUP BY a.id`

	acc, err := scanAccount(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Account{}, model.ErrNotFound
		}
		return model.Account{}, fmt.Errorf("failed to get account by id: %w", err)
	}
	return acc, nil
}

// ListCandidates returns active enrolled accounts of role in creation order.
func (r *AccountRepository) ListCandidates(ctx context.Context, role model.Role) ([]model.Candidate, error) {
	query := `SELECT id, face_descriptor FROM accounts
			  WHERE role = $1 AND status = $2 AND face_descriptor IS NOT NULL
			  ORDER BY created_at, id`

	rows, err := r.db.Query(ctx, query, role, model.AccountStatusActive)
	if err != nil {
		return nil, fmt.Errorf("failed to query candidates: %w", err)
	}
	defer rows.Close()

	var candidates []model.Candidate
	for rows.Next() {
		var (
			id         uuid.UUID
			descriptor []float32
		)
		if err := rows.Scan(&id, &descriptor); err != nil {
			return nil, fmt.Errorf("failed to scan candidate: %w", err)
		}
		candidates = append(candidates, model.Candidate{AccountID: id, Descriptor: descriptor})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate candidates: %w", err)
	}
	return candidates, nil
}

func (r *AccountRepository) SetDescriptor(ctx context.Context, id uuid.UUID, descriptor model.Descriptor, enrolledAt time.Time) error {
	query := `UPDATE accounts SET face_descriptor = $2, enrolled_at = $3, updated_at = now() WHERE id = $1`
	return r.execOne(ctx, "set descriptor", query, id, []float32(descriptor), enrolledAt)
}

func (r *AccountRepository) ClearDescriptor(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE accounts SET face_descriptor = NULL, enrolled_at = NULL, updated_at = now() WHERE id = $1`
	return r.execOne(ctx, "clear descriptor", query, id)
}

// UpdateLoginState is a compare-and-set on login_version.
func (r *AccountRepository) UpdateLoginState(ctx context.Context, id uuid.UUID, expectedVersion int64, state model.LoginState) error {
	query := `UPDATE accounts
			  SET login_attempts = $3, lock_until = $4, last_login = $5,
			      login_version = login_version + 1, updated_at = now()
			  WHERE id = $1 AND login_version = $2`

	tag, err := r.db.Exec(ctx, query, id, expectedVersion, state.Attempts, state.LockUntil, state.LastLogin)
	if err != nil {
		return fmt.Errorf("failed to update login state: %w", err)
	}
	if tag.RowsAffected() == 1 {
		return nil
	}

	var exists bool
	if err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM accounts WHERE id = $1)`, id).Scan(&exists); err != nil {
		return fmt.Errorf("failed to check account existence: %w", err)
	}
	if !exists {
		return model.ErrNotFound
	}
	return model.ErrVersionConflict
}

func (r *AccountRepository) SetStatus(ctx context.Context, id uuid.UUID, status model.AccountStatus) error {
	query := `UPDATE accounts SET status = $2, updated_at = now() WHERE id = $1`
	return r.execOne(ctx, "set status", query, id, status)
}

func (r *AccountRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.execOne(ctx, "delete account", `DELETE FROM accounts WHERE id = $1`, id)
}

func (r *AccountRepository) execOne(ctx context.Context, op, query string, args ...any) error {
	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to %s: %w", op, err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}
