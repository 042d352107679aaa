package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// AttemptStore persists the kiosk login audit log.
type AttemptStore interface {
	Record(ctx context.Context, attempt Attempt) error
	DeleteBefore(ctx context.Context, before time.Time) (int64, error)
}

// AttemptOutcome is the result of a single kiosk login attempt.
type AttemptOutcome string

const (
	AttemptOutcomeSuccess AttemptOutcome = "success"
)

// OutcomeFromError maps a login error to an audit outcome.
func OutcomeFromError(err error) AttemptOutcome {
	if err == nil {
		return AttemptOutcomeSuccess
	}
	if authErr, ok := AsAuthError(err); ok {
		return AttemptOutcome(authErr.Kind)
	}
	return "error"
}

// Attempt is a single audited login attempt.
type Attempt struct {
	ID         uuid.UUID
	HardwareID string
	AccountID  *uuid.UUID
	Outcome    AttemptOutcome
	Distance   *float64
	CreatedAt  time.Time
}
