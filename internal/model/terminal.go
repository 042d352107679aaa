package model

import (
	"context"
	"net"
	"strings"
	"time"

	"github.com/google/uuid"
)

// TerminalStore defines persistence operations for kiosks and their account bindings.
type TerminalStore interface {
	Create(ctx context.Context, terminal Terminal) (Terminal, error)
	GetByID(ctx context.Context, id uuid.UUID) (Terminal, error)
	GetByHardwareID(ctx context.Context, hardwareID string) (Terminal, error)
	Bind(ctx context.Context, accountID, terminalID uuid.UUID) error
	Unbind(ctx context.Context, accountID, terminalID uuid.UUID) error
}

// Terminal is a physical kiosk installed in a facility.
type Terminal struct {
	ID         uuid.UUID
	HardwareID string
	HomeID     string
	CreatedAt  time.Time
}

// NormalizeHardwareID returns the canonical form of a hardware identifier.
// MAC addresses in any notation accepted by net.ParseMAC become lower-case
// colon-separated; anything else is trimmed and lower-cased.
func NormalizeHardwareID(hardwareID string) string {
	hardwareID = strings.TrimSpace(hardwareID)
	if mac, err := net.ParseMAC(hardwareID); err == nil {
		return mac.String()
	}
	return strings.ToLower(hardwareID)
}
