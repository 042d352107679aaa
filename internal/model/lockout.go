package model

import "time"

const (
	DefaultMaxLoginAttempts = 5
	DefaultLockoutDuration  = 30 * time.Minute
)

// LockoutPolicy holds the lockout threshold and lock duration.
type LockoutPolicy struct {
	MaxAttempts int
	Duration    time.Duration
}

// DefaultLockoutPolicy returns 5 attempts / 30 minutes.
func DefaultLockoutPolicy() LockoutPolicy {
	return LockoutPolicy{MaxAttempts: DefaultMaxLoginAttempts, Duration: DefaultLockoutDuration}
}

// LoginState is the per-account lockout state. Locked-ness is derived from LockUntil.
type LoginState struct {
	Attempts  int
	LockUntil *time.Time
	LastLogin *time.Time
	Version   int64
}

// Locked reports whether the lock is in force at now.
func (s LoginState) Locked(now time.Time) bool {
	return s.LockUntil != nil && s.LockUntil.After(now)
}

// Failed returns the state after a failed attempt charged to this account.
//
// An expired lock is lazily cleared and the attempt counts as the first of a
// new series. A lock still in force is left untouched.
func (s LoginState) Failed(now time.Time, policy LockoutPolicy) LoginState {
	next := s
	switch {
	case s.LockUntil != nil && !s.LockUntil.After(now):
		next.Attempts = 1
		next.LockUntil = nil
	case s.Locked(now):
		return next
	default:
		next.Attempts++
	}

	if next.Attempts >= policy.MaxAttempts {
		until := now.Add(policy.Duration)
		next.LockUntil = &until
	}
	return next
}

// Succeeded returns the state after a fully successful login.
func (s LoginState) Succeeded(now time.Time) LoginState {
	next := s
	next.Attempts = 0
	next.LockUntil = nil
	next.LastLogin = &now
	return next
}
