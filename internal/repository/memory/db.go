// Package memory implements the stores on process memory. It backs
// DATABASE_DRIVER=memory deployments (single kiosk facility, demos) and tests
// that need real state.
package memory

import (
	"sync"

	"github.com/google/uuid"

	"github.com/dtroode/kioskauth-server/internal/model"
)

// DB is the shared state behind the memory repositories.
type DB struct {
	mu sync.RWMutex

	accounts     map[uuid.UUID]model.Account
	accountOrder []uuid.UUID

	terminals  map[uuid.UUID]model.Terminal
	byHardware map[string]uuid.UUID
	bindings   map[uuid.UUID][]uuid.UUID

	attempts []model.Attempt
}

// NewDB creates an empty DB.
func NewDB() *DB {
	return &DB{
		accounts:   make(map[uuid.UUID]model.Account),
		terminals:  make(map[uuid.UUID]model.Terminal),
		byHardware: make(map[string]uuid.UUID),
		bindings:   make(map[uuid.UUID][]uuid.UUID),
	}
}

// account returns a copy of the stored account that shares no memory with it.
// Caller must hold mu.
func (db *DB) account(id uuid.UUID) (model.Account, bool) {
	acc, ok := db.accounts[id]
	if !ok {
		return model.Account{}, false
	}
	acc.FaceDescriptor = acc.FaceDescriptor.Clone()
	acc.BoundTerminalIDs = append([]uuid.UUID(nil), db.bindings[id]...)
	return acc, true
}
