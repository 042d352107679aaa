package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/dtroode/kioskauth-server/internal/biometric"
	"github.com/dtroode/kioskauth-server/internal/logger"
	"github.com/dtroode/kioskauth-server/internal/model"
)

// lockoutWriteTimeout bounds lockout updates. They run detached from the
// request so a client hanging up cannot skip them.
const lockoutWriteTimeout = 10 * time.Second

// LoginRequest is a face capture presented at a kiosk.
type LoginRequest struct {
	HardwareID string `validate:"required"`
	Image      []byte `validate:"required,min=1"`
}

// Kiosk authenticates people at shared terminals.
type Kiosk struct {
	accounts  model.AccountStore
	attempts  model.AttemptStore
	extractor model.Extractor
	index     CandidateIndex
	matcher   *biometric.Matcher
	lockout   *Lockout
	devices   *DeviceGate
	sessions  *SessionIssuer
	throttle  *Throttle
	cfg       BiometricConfig
	validate  *validator.Validate
	now       func() time.Time
	logger    *logger.Logger
}

// NewKiosk creates the kiosk login service. attempts may be nil.
func NewKiosk(
	accounts model.AccountStore,
	attempts model.AttemptStore,
	extractor model.Extractor,
	index CandidateIndex,
	matcher *biometric.Matcher,
	lockout *Lockout,
	devices *DeviceGate,
	sessions *SessionIssuer,
	throttle *Throttle,
	cfg BiometricConfig,
	logger *logger.Logger,
) *Kiosk {
	return &Kiosk{
		accounts:  accounts,
		attempts:  attempts,
		extractor: extractor,
		index:     index,
		matcher:   matcher,
		lockout:   lockout,
		devices:   devices,
		sessions:  sessions,
		throttle:  throttle,
		cfg:       cfg,
		validate:  validator.New(),
		now:       time.Now,
		logger:    logger,
	}
}

// Login identifies the person in the capture and issues a session when the
// account is unlocked, active and bound to the presenting terminal.
func (k *Kiosk) Login(ctx context.Context, req LoginRequest) (model.Session, error) {
	attempt := model.Attempt{HardwareID: model.NormalizeHardwareID(req.HardwareID)}

	session, err := k.login(ctx, req, &attempt)
	k.audit(ctx, attempt, err)

	return session, err
}

func (k *Kiosk) login(ctx context.Context, req LoginRequest, attempt *model.Attempt) (model.Session, error) {
	if err := k.validate.Struct(req); err != nil {
		return model.Session{}, model.NewInvalidRequestError(err)
	}
	hardwareID := attempt.HardwareID

	if !k.throttle.Allowed(hardwareID) {
		k.logger.Warn("Kiosk service: terminal throttled",
			"hardware_id", hardwareID)
		return model.Session{}, model.ErrTerminalThrottled
	}

	descriptor, err := describe(ctx, k.extractor, k.cfg.ExtractTimeout, k.cfg.Dimension, req.Image)
	if err != nil {
		k.logger.Info("Kiosk service: failed to extract descriptor",
			"hardware_id", hardwareID,
			"error", err.Error())
		return model.Session{}, err
	}

	match, ok, err := k.matcher.Match(ctx, descriptor, k.index.Snapshot(k.cfg.EnrollableRole))
	if err != nil {
		return model.Session{}, fmt.Errorf("failed to match descriptor: %w", err)
	}
	if match.AccountID != uuid.Nil {
		attempt.Distance = &match.Distance
	}
	if !ok {
		k.throttle.Charge(hardwareID)
		k.logger.Info("Kiosk service: face not recognized",
			"hardware_id", hardwareID)
		return model.Session{}, model.ErrUnmatched
	}
	attempt.AccountID = &match.AccountID

	account, err := k.accounts.GetByID(ctx, match.AccountID)
	if errors.Is(err, model.ErrNotFound) {
		// deleted after the snapshot was taken
		k.index.Remove(match.AccountID)
		k.throttle.Charge(hardwareID)
		return model.Session{}, model.ErrUnmatched
	}
	if err != nil {
		k.logger.Error("Kiosk service: failed to get account",
			"account_id", match.AccountID,
			"error", err.Error())
		return model.Session{}, fmt.Errorf("failed to get account: %w", err)
	}

	if state := account.LoginState(); state.Locked(k.now()) {
		k.logger.Info("Kiosk service: account is locked",
			"account_id", account.ID,
			"lock_until", *state.LockUntil)
		return model.Session{}, model.NewAccountLockedError(*state.LockUntil)
	}

	if !account.Active() {
		k.index.Remove(account.ID)
		return model.Session{}, k.fail(ctx, account.ID, hardwareID, model.ErrAccountInactive)
	}

	if _, err := k.devices.Authorize(ctx, account, hardwareID); err != nil {
		if _, ok := model.AsAuthError(err); ok {
			return model.Session{}, k.fail(ctx, account.ID, hardwareID, err)
		}
		k.logger.Error("Kiosk service: failed to authorize device",
			"account_id", account.ID,
			"hardware_id", hardwareID,
			"error", err.Error())
		return model.Session{}, err
	}

	session, err := k.sessions.Issue(account)
	if err != nil {
		k.logger.Error("Kiosk service: failed to issue session",
			"account_id", account.ID,
			"error", err.Error())
		return model.Session{}, err
	}

	// RecordSuccess checks the lock again under the account's lockout serialization.
	writeCtx, cancel := k.lockoutContext(ctx)
	defer cancel()
	if _, err := k.lockout.RecordSuccess(writeCtx, account.ID); err != nil {
		if errors.Is(err, model.ErrAccountLocked) {
			k.logger.Info("Kiosk service: account locked during login",
				"account_id", account.ID)
			return model.Session{}, err
		}
		k.logger.Error("Kiosk service: failed to record successful login",
			"account_id", account.ID,
			"error", err.Error())
		return model.Session{}, fmt.Errorf("failed to record successful login: %w", err)
	}

	k.logger.Info("Kiosk service: login succeeded",
		"account_id", account.ID,
		"hardware_id", hardwareID,
		"distance", match.Distance)
	return session, nil
}

// fail charges cause to the account's lockout counter and returns cause.
// If the failure cannot be recorded the storage error is returned instead.
func (k *Kiosk) fail(ctx context.Context, accountID uuid.UUID, hardwareID string, cause error) error {
	writeCtx, cancel := k.lockoutContext(ctx)
	defer cancel()

	state, err := k.lockout.RecordFailure(writeCtx, accountID)
	if err != nil {
		k.logger.Error("Kiosk service: failed to record failed login",
			"account_id", accountID,
			"reason", cause.Error(),
			"error", err.Error())
		return fmt.Errorf("failed to record failed login (%v): %w", cause, err)
	}

	k.logger.Info("Kiosk service: login rejected",
		"account_id", accountID,
		"hardware_id", hardwareID,
		"attempts", state.Attempts,
		"reason", cause.Error())
	return cause
}

func (k *Kiosk) lockoutContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(ctx), lockoutWriteTimeout)
}

func (k *Kiosk) audit(ctx context.Context, attempt model.Attempt, err error) {
	if k.attempts == nil {
		return
	}

	attempt.ID = uuid.New()
	attempt.Outcome = model.OutcomeFromError(err)
	attempt.CreatedAt = k.now()

	if recErr := k.attempts.Record(context.WithoutCancel(ctx), attempt); recErr != nil {
		k.logger.Warn("Kiosk service: failed to record login attempt",
			"hardware_id", attempt.HardwareID,
			"error", recErr.Error())
	}
}
