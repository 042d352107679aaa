package service

import (
	"sync"

	"github.com/google/uuid"
)

// keyLock hands out one mutex per key. Entries are dropped once no
// goroutine holds or waits on them.
type keyLock struct {
	mu    sync.Mutex
	locks map[uuid.UUID]*keyLockEntry
}

type keyLockEntry struct {
	mu   sync.Mutex
	refs int
}

func newKeyLock() *keyLock {
	return &keyLock{locks: make(map[uuid.UUID]*keyLockEntry)}
}

// Lock blocks until id is free and returns the matching unlock func.
func (k *keyLock) Lock(id uuid.UUID) (unlock func()) {
	k.mu.Lock()
	entry, ok := k.locks[id]
	if !ok {
		entry = &keyLockEntry{}
		k.locks[id] = entry
	}
	entry.refs++
	k.mu.Unlock()

	entry.mu.Lock()

	return func() {
		entry.mu.Unlock()

		k.mu.Lock()
		entry.refs--
		if entry.refs == 0 {
			delete(k.locks, id)
		}
		k.mu.Unlock()
	}
}

func (k *keyLock) size() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return len(k.locks)
}
