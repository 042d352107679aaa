package service

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/dtroode/kioskauth-server/internal/logger"
	"github.com/dtroode/kioskauth-server/internal/model"
)

type CreateAccountRequest struct {
	DisplayName string     `validate:"required,max=200"`
	Role        model.Role `validate:"required,oneof=student teacher admin"`
}

type RegisterTerminalRequest struct {
	HardwareID string `validate:"required,max=64"`
	HomeID     string `validate:"max=128"`
}

// Accounts administers accounts, terminals and their bindings.
type Accounts struct {
	accounts  model.AccountStore
	terminals model.TerminalStore
	index     CandidateIndex
	captures  *CaptureArchive
	validate  *validator.Validate
	logger    *logger.Logger
}

// NewAccounts creates the administration service. captures may be nil.
func NewAccounts(accounts model.AccountStore, terminals model.TerminalStore, index CandidateIndex, captures *CaptureArchive, logger *logger.Logger) *Accounts {
	return &Accounts{
		accounts:  accounts,
		terminals: terminals,
		index:     index,
		captures:  captures,
		validate:  validator.New(),
		logger:    logger,
	}
}

func (a *Accounts) Create(ctx context.Context, req CreateAccountRequest) (model.Account, error) {
	if err := a.validate.Struct(req); err != nil {
		return model.Account{}, model.NewInvalidRequestError(err)
	}

	account, err := a.accounts.Create(ctx, model.Account{
		ID:          uuid.New(),
		DisplayName: req.DisplayName,
		Role:        req.Role,
		Status:      model.AccountStatusActive,
	})
	if err != nil {
		a.logger.Error("Accounts service: failed to create account",
			"error", err.Error())
		return model.Account{}, fmt.Errorf("failed to create account: %w", err)
	}

	a.logger.Info("Accounts service: account created",
		"account_id", account.ID,
		"role", account.Role)
	return account, nil
}

func (a *Accounts) Profile(ctx context.Context, accountID uuid.UUID) (model.Profile, error) {
	account, err := a.accounts.GetByID(ctx, accountID)
	if err != nil {
		return model.Profile{}, fmt.Errorf("failed to get account: %w", err)
	}
	return account.Profile(), nil
}

// RegisterTerminal records a kiosk under its canonical hardware id.
func (a *Accounts) RegisterTerminal(ctx context.Context, req RegisterTerminalRequest) (model.Terminal, error) {
	if err := a.validate.Struct(req); err != nil {
		return model.Terminal{}, model.NewInvalidRequestError(err)
	}

	terminal, err := a.terminals.Create(ctx, model.Terminal{
		ID:         uuid.New(),
		HardwareID: model.NormalizeHardwareID(req.HardwareID),
		HomeID:     req.HomeID,
	})
	if err != nil {
		a.logger.Error("Accounts service: failed to register terminal",
			"hardware_id", req.HardwareID,
			"error", err.Error())
		return model.Terminal{}, fmt.Errorf("failed to register terminal: %w", err)
	}

	a.logger.Info("Accounts service: terminal registered",
		"terminal_id", terminal.ID,
		"hardware_id", terminal.HardwareID)
	return terminal, nil
}

func (a *Accounts) BindTerminal(ctx context.Context, accountID, terminalID uuid.UUID) error {
	if err := a.terminals.Bind(ctx, accountID, terminalID); err != nil {
		a.logger.Error("Accounts service: failed to bind terminal",
			"account_id", accountID,
			"terminal_id", terminalID,
			"error", err.Error())
		return fmt.Errorf("failed to bind terminal: %w", err)
	}
	return nil
}

func (a *Accounts) UnbindTerminal(ctx context.Context, accountID, terminalID uuid.UUID) error {
	if err := a.terminals.Unbind(ctx, accountID, terminalID); err != nil {
		a.logger.Error("Accounts service: failed to unbind terminal",
			"account_id", accountID,
			"terminal_id", terminalID,
			"error", err.Error())
		return fmt.Errorf("failed to unbind terminal: %w", err)
	}
	return nil
}

// SetStatus changes the account status. A deactivated account leaves the
// candidate index before SetStatus returns.
func (a *Accounts) SetStatus(ctx context.Context, accountID uuid.UUID, status model.AccountStatus) error {
	if !status.Valid() {
		return model.NewInvalidRequestError(fmt.Errorf("unknown status %q", status))
	}

	if err := a.accounts.SetStatus(ctx, accountID, status); err != nil {
		a.logger.Error("Accounts service: failed to set status",
			"account_id", accountID,
			"error", err.Error())
		return fmt.Errorf("failed to set status: %w", err)
	}

	if status == model.AccountStatusInactive {
		a.index.Remove(accountID)
	}
	a.index.Invalidate()

	a.logger.Info("Accounts service: status changed",
		"account_id", accountID,
		"status", status)
	return nil
}

// Delete removes the account and its archived captures. It leaves the
// candidate index before Delete returns.
func (a *Accounts) Delete(ctx context.Context, accountID uuid.UUID) error {
	if _, err := a.captures.Purge(ctx, accountID); err != nil {
		a.logger.Error("Accounts service: failed to delete captures",
			"account_id", accountID,
			"error", err.Error())
		return fmt.Errorf("failed to delete captures: %w", err)
	}

	if err := a.accounts.Delete(ctx, accountID); err != nil {
		a.logger.Error("Accounts service: failed to delete account",
			"account_id", accountID,
			"error", err.Error())
		return fmt.Errorf("failed to delete account: %w", err)
	}

	a.index.Remove(accountID)
	a.index.Invalidate()

	a.logger.Info("Accounts service: account deleted",
		"account_id", accountID)
	return nil
}
