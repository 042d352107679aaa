package service

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Throttle is a per-terminal token bucket charged by unrecognized faces.
// It slows down a terminal that keeps presenting unknown faces without
// touching any account's lockout state.
type Throttle struct {
	burst   int
	refill  rate.Limit
	idleTTL time.Duration
	now     func() time.Time

	mu       sync.Mutex
	limiters map[string]*terminalLimiter
}

type terminalLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewThrottle creates a Throttle allowing burst unmatched attempts per
// terminal, refilled one token every refillEvery. burst <= 0 disables it.
func NewThrottle(burst int, refillEvery, idleTTL time.Duration) *Throttle {
	refill := rate.Inf
	if refillEvery > 0 {
		refill = rate.Every(refillEvery)
	}
	return &Throttle{
		burst:    burst,
		refill:   refill,
		idleTTL:  idleTTL,
		now:      time.Now,
		limiters: make(map[string]*terminalLimiter),
	}
}

// Allowed reports whether hardwareID still has a token left.
func (t *Throttle) Allowed(hardwareID string) bool {
	if t.burst <= 0 {
		return true
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	l, ok := t.limiters[hardwareID]
	if !ok {
		return true
	}
	return l.limiter.TokensAt(t.now()) >= 1
}

// Charge consumes one token of hardwareID.
func (t *Throttle) Charge(hardwareID string) {
	if t.burst <= 0 {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	l, ok := t.limiters[hardwareID]
	if !ok {
		l = &terminalLimiter{limiter: rate.NewLimiter(t.refill, t.burst)}
		t.limiters[hardwareID] = l
	}
	l.lastSeen = now
	l.limiter.AllowN(now, 1)
}

// Prune drops limiters of terminals idle for longer than the idle TTL and
// returns how many were removed.
func (t *Throttle) Prune() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	removed := 0
	for id, l := range t.limiters {
		if now.Sub(l.lastSeen) > t.idleTTL {
			delete(t.limiters, id)
			removed++
		}
	}
	return removed
}

func (t *Throttle) size() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.limiters)
}
