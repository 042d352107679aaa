package memory

import (
	"context"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/kioskauth-server/internal/model"
)

var _ model.TerminalStore = (*TerminalRepository)(nil)

type TerminalRepository struct {
	db *DB
}

func NewTerminalRepository(db *DB) *TerminalRepository {
	return &TerminalRepository{
		db: db,
	}
}

func (r *TerminalRepository) Create(ctx context.Context, terminal model.Terminal) (model.Terminal, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if terminal.ID == uuid.Nil {
		terminal.ID = uuid.New()
	}
	if _, ok := r.db.byHardware[terminal.HardwareID]; ok {
		return model.Terminal{}, model.ErrAlreadyExists
	}
	if _, ok := r.db.terminals[terminal.ID]; ok {
		return model.Terminal{}, model.ErrAlreadyExists
	}
	if terminal.CreatedAt.IsZero() {
		terminal.CreatedAt = time.Now()
	}

	r.db.terminals[terminal.ID] = terminal
	r.db.byHardware[terminal.HardwareID] = terminal.ID
	return terminal, nil
}

func (r *TerminalRepository) GetByID(ctx context.Context, id uuid.UUID) (model.Terminal, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	terminal, ok := r.db.terminals[id]
	if !ok {
		return model.Terminal{}, model.ErrNotFound
	}
	return terminal, nil
}

func (r *TerminalRepository) GetByHardwareID(ctx context.Context, hardwareID string) (model.Terminal, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	id, ok := r.db.byHardware[hardwareID]
	if !ok {
		return model.Terminal{}, model.ErrNotFound
	}
	return r.db.terminals[id], nil
}

// Bind is idempotent.
func (r *TerminalRepository) Bind(ctx context.Context, accountID, terminalID uuid.UUID) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.accounts[accountID]; !ok {
		return model.ErrNotFound
	}
	if _, ok := r.db.terminals[terminalID]; !ok {
		return model.ErrNotFound
	}
	if slices.Contains(r.db.bindings[accountID], terminalID) {
		return nil
	}
	r.db.bindings[accountID] = append(r.db.bindings[accountID], terminalID)
	return nil
}

func (r *TerminalRepository) Unbind(ctx context.Context, accountID, terminalID uuid.UUID) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	bound := r.db.bindings[accountID]
	pos := slices.Index(bound, terminalID)
	if pos < 0 {
		return model.ErrNotFound
	}
	r.db.bindings[accountID] = slices.Delete(slices.Clone(bound), pos, pos+1)
	return nil
}
