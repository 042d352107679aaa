package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"

	"github.com/dtroode/kioskauth-server/internal/logger"
	"github.com/dtroode/kioskauth-server/internal/model"
)

// Lockout applies lockout transitions to stored accounts.
// Updates for one account are serialized in-process and written as a
// compare-and-swap on the login version. A conflicting write from another
// server instance is retried with backoff until the context is done, so no
// failure is dropped.
type Lockout struct {
	store      model.AccountStore
	policy     model.LockoutPolicy
	locks      *keyLock
	now        func() time.Time
	newBackOff func() backoff.BackOff
	logger     *logger.Logger
}

func NewLockout(store model.AccountStore, policy model.LockoutPolicy, logger *logger.Logger) *Lockout {
	return &Lockout{
		store:      store,
		policy:     policy,
		locks:      newKeyLock(),
		now:        time.Now,
		newBackOff: loginStateBackOff,
		logger:     logger,
	}
}

func loginStateBackOff() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 5 * time.Millisecond
	b.MaxInterval = 250 * time.Millisecond
	b.MaxElapsedTime = 0
	return b
}

// RecordFailure charges one failed attempt to accountID and returns the new state.
func (l *Lockout) RecordFailure(ctx context.Context, accountID uuid.UUID) (model.LoginState, error) {
	next, err := l.apply(ctx, accountID, func(s model.LoginState, now time.Time) (model.LoginState, error) {
		return s.Failed(now, l.policy), nil
	})
	if err != nil {
		return model.LoginState{}, err
	}

	if next.LockUntil != nil && next.Attempts >= l.policy.MaxAttempts {
		l.logger.Warn("Lockout service: account locked",
			"account_id", accountID,
			"attempts", next.Attempts,
			"lock_until", *next.LockUntil)
	}
	return next, nil
}

// RecordSuccess resets the counter and stamps the last login. It returns
// ErrAccountLocked, leaving the state untouched, when the stored lock is in
// force.
func (l *Lockout) RecordSuccess(ctx context.Context, accountID uuid.UUID) (model.LoginState, error) {
	return l.apply(ctx, accountID, func(s model.LoginState, now time.Time) (model.LoginState, error) {
		if s.Locked(now) {
			return s, model.NewAccountLockedError(*s.LockUntil)
		}
		return s.Succeeded(now), nil
	})
}

func (l *Lockout) apply(
	ctx context.Context,
	accountID uuid.UUID,
	transition func(model.LoginState, time.Time) (model.LoginState, error),
) (model.LoginState, error) {
	unlock := l.locks.Lock(accountID)
	defer unlock()

	var next model.LoginState
	update := func() error {
		account, err := l.store.GetByID(ctx, accountID)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("failed to get account: %w", err))
		}

		current := account.LoginState()
		next, err = transition(current, l.now())
		if err != nil {
			return backoff.Permanent(err)
		}

		err = l.store.UpdateLoginState(ctx, accountID, current.Version, next)
		if errors.Is(err, model.ErrVersionConflict) {
			return err
		}
		if err != nil {
			return backoff.Permanent(fmt.Errorf("failed to update login state: %w", err))
		}

		next.Version = current.Version + 1
		return nil
	}
	retried := func(err error, wait time.Duration) {
		l.logger.Debug("Lockout service: login state changed concurrently, retrying",
			"account_id", accountID,
			"wait", wait)
	}

	err := backoff.RetryNotify(update, backoff.WithContext(l.newBackOff(), ctx), retried)
	if err == nil {
		return next, nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(err, ctxErr) {
		l.logger.Error("Lockout service: failed to update login state before deadline",
			"account_id", accountID,
			"error", err.Error())
		return model.LoginState{}, fmt.Errorf("failed to update login state: %w", err)
	}
	return model.LoginState{}, err
}
