package model

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrNotFound        = errors.New("not found")
	ErrAlreadyExists   = errors.New("already exists")
	ErrVersionConflict = errors.New("version conflict")
)

// ErrorKind classifies authentication failures.
type ErrorKind string

const (
	KindNoFaceDetected       ErrorKind = "no_face_detected"
	KindExtractorUnavailable ErrorKind = "extractor_unavailable"
	KindUnmatched            ErrorKind = "unmatched"
	KindAccountLocked        ErrorKind = "account_locked"
	KindAccountInactive      ErrorKind = "account_inactive"
	KindNoTerminalsBound     ErrorKind = "no_terminals_bound"
	KindDeviceNotAuthorized  ErrorKind = "device_not_authorized"
	KindTerminalThrottled    ErrorKind = "terminal_throttled"
	KindRoleNotEnrollable    ErrorKind = "role_not_enrollable"
	KindInvalidDescriptor    ErrorKind = "invalid_descriptor"
	KindInvalidRequest       ErrorKind = "invalid_request"
)

// AuthError is a typed authentication or enrollment failure.
// Two AuthErrors match under errors.Is when their kinds are equal.
type AuthError struct {
	Kind      ErrorKind
	Message   string
	LockUntil *time.Time
	cause     error
}

func (e *AuthError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

func (e *AuthError) Is(target error) bool {
	t, ok := target.(*AuthError)
	return ok && t.Kind == e.Kind
}

func (e *AuthError) Unwrap() error {
	return e.cause
}

var (
	ErrNoFaceDetected       = &AuthError{Kind: KindNoFaceDetected, Message: "no single face detected, please recapture"}
	ErrExtractorUnavailable = &AuthError{Kind: KindExtractorUnavailable, Message: "face extractor is unavailable, please retry"}
	ErrUnmatched            = &AuthError{Kind: KindUnmatched, Message: "face not recognized"}
	ErrAccountLocked        = &AuthError{Kind: KindAccountLocked, Message: "account is temporarily locked"}
	ErrAccountInactive      = &AuthError{Kind: KindAccountInactive, Message: "account is inactive"}
	ErrNoTerminalsBound     = &AuthError{Kind: KindNoTerminalsBound, Message: "account has no terminals bound"}
	ErrDeviceNotAuthorized  = &AuthError{Kind: KindDeviceNotAuthorized, Message: "terminal is not authorized for this account"}
	ErrTerminalThrottled    = &AuthError{Kind: KindTerminalThrottled, Message: "too many unrecognized attempts from this terminal"}
	ErrRoleNotEnrollable    = &AuthError{Kind: KindRoleNotEnrollable, Message: "account role cannot be enrolled"}
	ErrInvalidDescriptor    = &AuthError{Kind: KindInvalidDescriptor, Message: "invalid face descriptor"}
	ErrInvalidRequest       = &AuthError{Kind: KindInvalidRequest, Message: "invalid request"}
)

// NewAccountLockedError returns ErrAccountLocked carrying the lock expiry.
func NewAccountLockedError(until time.Time) *AuthError {
	return &AuthError{
		Kind:      KindAccountLocked,
		Message:   fmt.Sprintf("account is locked until %s", until.UTC().Format(time.RFC3339)),
		LockUntil: &until,
	}
}

// NewExtractorUnavailableError wraps cause as ErrExtractorUnavailable.
func NewExtractorUnavailableError(cause error) *AuthError {
	return &AuthError{Kind: KindExtractorUnavailable, Message: ErrExtractorUnavailable.Message, cause: cause}
}

// NewInvalidRequestError wraps cause as ErrInvalidRequest.
func NewInvalidRequestError(cause error) *AuthError {
	return &AuthError{Kind: KindInvalidRequest, Message: ErrInvalidRequest.Message, cause: cause}
}

// AsAuthError extracts the AuthError from err's chain.
func AsAuthError(err error) (*AuthError, bool) {
	var authErr *AuthError
	if errors.As(err, &authErr) {
		return authErr, true
	}
	return nil, false
}
