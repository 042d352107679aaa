package service

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/dtroode/kioskauth-server/internal/logger"
	"github.com/dtroode/kioskauth-server/internal/model"
)

// EnrollRequest binds the face in Image to the account.
type EnrollRequest struct {
	AccountID uuid.UUID  `validate:"required"`
	Role      model.Role `validate:"required"`
	Image     []byte     `validate:"required,min=1"`
}

// BiometricConfig is shared by enrollment and kiosk login.
type BiometricConfig struct {
	EnrollableRole model.Role
	Dimension      int
	ExtractTimeout time.Duration
}

type Enrollment struct {
	accounts  model.AccountStore
	extractor model.Extractor
	index     CandidateIndex
	captures  *CaptureArchive
	cfg       BiometricConfig
	validate  *validator.Validate
	now       func() time.Time
	logger    *logger.Logger
}

// NewEnrollment creates the enrollment service. captures may be nil.
func NewEnrollment(
	accounts model.AccountStore,
	extractor model.Extractor,
	index CandidateIndex,
	captures *CaptureArchive,
	cfg BiometricConfig,
	logger *logger.Logger,
) *Enrollment {
	return &Enrollment{
		accounts:  accounts,
		extractor: extractor,
		index:     index,
		captures:  captures,
		cfg:       cfg,
		validate:  validator.New(),
		now:       time.Now,
		logger:    logger,
	}
}

// Enroll extracts the face descriptor from the request image and stores it on the account.
// On any failure the previously stored descriptor, if any, is left as it was.
func (e *Enrollment) Enroll(ctx context.Context, req EnrollRequest) error {
	if err := e.validate.Struct(req); err != nil {
		return model.NewInvalidRequestError(err)
	}

	e.logger.Debug("Enrollment service: starting enrollment",
		"account_id", req.AccountID)

	account, err := e.accounts.GetByID(ctx, req.AccountID)
	if err != nil {
		e.logger.Error("Enrollment service: failed to get account",
			"account_id", req.AccountID,
			"error", err.Error())
		return fmt.Errorf("failed to get account: %w", err)
	}

	if account.Role != e.cfg.EnrollableRole || req.Role != account.Role {
		e.logger.Info("Enrollment service: role is not enrollable",
			"account_id", req.AccountID,
			"account_role", account.Role,
			"request_role", req.Role)
		return model.ErrRoleNotEnrollable
	}

	descriptor, err := describe(ctx, e.extractor, e.cfg.ExtractTimeout, e.cfg.Dimension, req.Image)
	if err != nil {
		e.logger.Info("Enrollment service: failed to extract descriptor",
			"account_id", req.AccountID,
			"error", err.Error())
		return err
	}

	enrolledAt := e.now()
	if err := e.accounts.SetDescriptor(ctx, account.ID, descriptor, enrolledAt); err != nil {
		e.logger.Error("Enrollment service: failed to store descriptor",
			"account_id", req.AccountID,
			"error", err.Error())
		return fmt.Errorf("failed to store descriptor: %w", err)
	}

	e.archiveCapture(ctx, account.ID, enrolledAt, req.Image)
	e.index.Invalidate()

	e.logger.Info("Enrollment service: account enrolled",
		"account_id", req.AccountID)
	return nil
}

// Unenroll removes the account's descriptor and archived captures so it can
// no longer be matched.
func (e *Enrollment) Unenroll(ctx context.Context, accountID uuid.UUID) error {
	if _, err := e.captures.Purge(ctx, accountID); err != nil {
		e.logger.Error("Enrollment service: failed to delete captures",
			"account_id", accountID,
			"error", err.Error())
		return fmt.Errorf("failed to delete captures: %w", err)
	}

	if err := e.accounts.ClearDescriptor(ctx, accountID); err != nil {
		e.logger.Error("Enrollment service: failed to clear descriptor",
			"account_id", accountID,
			"error", err.Error())
		return fmt.Errorf("failed to clear descriptor: %w", err)
	}

	e.index.Remove(accountID)
	e.index.Invalidate()

	e.logger.Info("Enrollment service: account unenrolled",
		"account_id", accountID)
	return nil
}

// archiveCapture stores the new capture and drops the ones of earlier enrollments.
// Failures are logged only.
func (e *Enrollment) archiveCapture(ctx context.Context, accountID uuid.UUID, at time.Time, image []byte) {
	if e.captures == nil {
		return
	}

	key, err := e.captures.Store(ctx, accountID, at, image)
	if err != nil {
		e.logger.Warn("Enrollment service: failed to archive capture",
			"account_id", accountID,
			"error", err.Error())
	}

	var keep []string
	if key != "" {
		keep = append(keep, key)
	}
	if _, err := e.captures.Purge(ctx, accountID, keep...); err != nil {
		e.logger.Warn("Enrollment service: failed to delete previous captures",
			"account_id", accountID,
			"error", err.Error())
	}
}
