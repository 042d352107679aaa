package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Role is the role class of an account in the records backend.
type Role string

const (
	// RoleStudent is the enrollable role.
	RoleStudent Role = "student"
	// RoleTeacher is a staff role allowed to operate kiosks.
	RoleTeacher Role = "teacher"
	// RoleAdmin is a staff role allowed to operate kiosks.
	RoleAdmin Role = "admin"
)

// AccountStatus enumerates account states.
type AccountStatus string

const (
	// AccountStatusActive allows login.
	AccountStatusActive AccountStatus = "active"
	// AccountStatusInactive forbids login.
	AccountStatusInactive AccountStatus = "inactive"
)

// Valid reports whether s is a known status.
func (s AccountStatus) Valid() bool {
	return s == AccountStatusActive || s == AccountStatusInactive
}

// AccountStore defines persistence operations for the authentication-owned account fields.
// Profile fields are owned by the records backend and are read-only here.
type AccountStore interface {
	Create(ctx context.Context, account Account) (Account, error)
	GetByID(ctx context.Context, id uuid.UUID) (Account, error)
	ListCandidates(ctx context.Context, role Role) ([]Candidate, error)
	SetDescriptor(ctx context.Context, id uuid.UUID, descriptor Descriptor, enrolledAt time.Time) error
	ClearDescriptor(ctx context.Context, id uuid.UUID) error
	// UpdateLoginState writes state only if the stored login version still equals
	// expectedVersion, otherwise it returns ErrVersionConflict.
	UpdateLoginState(ctx context.Context, id uuid.UUID, expectedVersion int64, state LoginState) error
	SetStatus(ctx context.Context, id uuid.UUID, status AccountStatus) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// Account represents an enrollable person together with its biometric and lockout state.
type Account struct {
	ID               uuid.UUID
	DisplayName      string
	Role             Role
	Status           AccountStatus
	FaceDescriptor   Descriptor
	EnrolledAt       *time.Time
	LoginAttempts    int
	LockUntil        *time.Time
	LastLogin        *time.Time
	LoginVersion     int64
	BoundTerminalIDs []uuid.UUID
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Enrolled reports whether the account has a face descriptor.
func (a Account) Enrolled() bool {
	return len(a.FaceDescriptor) > 0
}

// Active reports whether the account status permits login.
func (a Account) Active() bool {
	return a.Status == AccountStatusActive
}

// LoginState returns the lockout-related part of the account.
func (a Account) LoginState() LoginState {
	return LoginState{
		Attempts:  a.LoginAttempts,
		LockUntil: a.LockUntil,
		LastLogin: a.LastLogin,
		Version:   a.LoginVersion,
	}
}

// BoundTo reports whether terminalID is in the account's bound terminal set.
func (a Account) BoundTo(terminalID uuid.UUID) bool {
	for _, id := range a.BoundTerminalIDs {
		if id == terminalID {
			return true
		}
	}
	return false
}

// Profile returns the public part of the account.
func (a Account) Profile() Profile {
	return Profile{
		ID:          a.ID,
		DisplayName: a.DisplayName,
		Role:        a.Role,
		Status:      a.Status,
	}
}

// Candidate is a single entry of the candidate index.
type Candidate struct {
	AccountID  uuid.UUID
	Descriptor Descriptor
}
