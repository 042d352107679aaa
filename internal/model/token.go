package model

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrInvalidToken = errors.New("invalid session token")

// TokenManager signs and verifies session tokens.
type TokenManager interface {
	GenerateSessionToken(accountID uuid.UUID, role Role, ttl time.Duration) (token string, expiresAt time.Time, err error)
	ParseSessionToken(token string) (SessionClaims, error)
}

// SessionClaims are the verified contents of a session token.
type SessionClaims struct {
	ID        string
	AccountID uuid.UUID
	Role      Role
	ExpiresAt time.Time
}
