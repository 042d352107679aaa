package biometric

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/dtroode/kioskauth-server/internal/logger"
	"github.com/dtroode/kioskauth-server/internal/model"
)

// CandidateSource loads the enrolled, active accounts of a role.
type CandidateSource interface {
	ListCandidates(ctx context.Context, role model.Role) ([]model.Candidate, error)
}

// Index is the in-memory candidate set matched against on every login.
// Readers get an immutable snapshot without locking; writers publish a new
// slice through an atomic pointer.
type Index struct {
	source CandidateSource
	role   model.Role
	logger *logger.Logger

	snapshot atomic.Pointer[[]model.Candidate]
	refresh  chan struct{}

	// refreshMu serializes Refresh so snapshots are published in read order.
	refreshMu sync.Mutex

	// mu serializes writers and guards the tombstones below. An account
	// removed while a refresh is in flight must not reappear when that
	// refresh publishes its (older) read.
	mu      sync.Mutex
	gen     uint64
	removed map[uuid.UUID]uint64
}

// NewIndex creates an empty Index for role. Call Refresh to load it.
func NewIndex(source CandidateSource, role model.Role, logger *logger.Logger) *Index {
	idx := &Index{
		source:  source,
		role:    role,
		logger:  logger,
		refresh: make(chan struct{}, 1),
		removed: make(map[uuid.UUID]uint64),
	}
	empty := []model.Candidate{}
	idx.snapshot.Store(&empty)
	return idx
}

// Snapshot returns the current candidates of role. The returned slice must not be modified.
func (i *Index) Snapshot(role model.Role) []model.Candidate {
	if role != i.role {
		return nil
	}
	return *i.snapshot.Load()
}

// Len returns the number of candidates in the current snapshot.
func (i *Index) Len() int {
	return len(*i.snapshot.Load())
}

// Refresh rebuilds the snapshot from the source. Concurrent calls run one at a time.
func (i *Index) Refresh(ctx context.Context) error {
	i.refreshMu.Lock()
	defer i.refreshMu.Unlock()

	i.mu.Lock()
	startGen := i.gen
	i.mu.Unlock()

	candidates, err := i.source.ListCandidates(ctx, i.role)
	if err != nil {
		return fmt.Errorf("failed to list candidates: %w", err)
	}

	i.mu.Lock()
	defer i.mu.Unlock()

	fresh := make([]model.Candidate, 0, len(candidates))
	for _, c := range candidates {
		if g, ok := i.removed[c.AccountID]; ok && g > startGen {
			continue
		}
		fresh = append(fresh, c)
	}
	for id, g := range i.removed {
		if g <= startGen {
			delete(i.removed, id)
		}
	}
	i.snapshot.Store(&fresh)

	i.logger.Debug("Candidate index: refreshed",
		"role", i.role,
		"candidates", len(fresh))
	return nil
}

// Invalidate schedules a refresh on the Run loop. It never blocks.
func (i *Index) Invalidate() {
	select {
	case i.refresh <- struct{}{}:
	default:
	}
}

// Remove drops accountID from the snapshot immediately.
// The caller must have removed or deactivated the account in the store first.
func (i *Index) Remove(accountID uuid.UUID) {
	i.mu.Lock()
	defer i.mu.Unlock()

	i.gen++
	i.removed[accountID] = i.gen

	current := *i.snapshot.Load()
	pos := slices.IndexFunc(current, func(c model.Candidate) bool {
		return c.AccountID == accountID
	})
	if pos < 0 {
		return
	}
	next := slices.Concat(current[:pos], current[pos+1:])
	i.snapshot.Store(&next)
}

// Run serves Invalidate requests until ctx is done.
func (i *Index) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-i.refresh:
			if err := i.Refresh(ctx); err != nil && ctx.Err() == nil {
				i.logger.Error("Candidate index: failed to refresh",
					"role", i.role,
					"error", err.Error())
			}
		}
	}
}
