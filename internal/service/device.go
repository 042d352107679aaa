package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/dtroode/kioskauth-server/internal/model"
)

// DeviceGate checks that a kiosk is one of the terminals bound to an account.
type DeviceGate struct {
	terminals model.TerminalStore
}

func NewDeviceGate(terminals model.TerminalStore) *DeviceGate {
	return &DeviceGate{terminals: terminals}
}

// Authorize resolves hardwareID (already normalized) and checks it against
// account's bound set. It returns ErrNoTerminalsBound for an account without
// bindings and ErrDeviceNotAuthorized for an unknown or unbound terminal.
func (g *DeviceGate) Authorize(ctx context.Context, account model.Account, hardwareID string) (model.Terminal, error) {
	if len(account.BoundTerminalIDs) == 0 {
		return model.Terminal{}, model.ErrNoTerminalsBound
	}

	terminal, err := g.terminals.GetByHardwareID(ctx, hardwareID)
	if errors.Is(err, model.ErrNotFound) {
		return model.Terminal{}, model.ErrDeviceNotAuthorized
	}
	if err != nil {
		return model.Terminal{}, fmt.Errorf("failed to get terminal by hardware id: %w", err)
	}

	if !account.BoundTo(terminal.ID) {
		return model.Terminal{}, model.ErrDeviceNotAuthorized
	}
	return terminal, nil
}
