package model

import (
	"time"

	"github.com/google/uuid"
)

// Profile is the public part of an account returned to kiosks.
type Profile struct {
	ID          uuid.UUID
	DisplayName string
	Role        Role
	Status      AccountStatus
}

// Session is the result of a successful kiosk login.
type Session struct {
	Token     string
	ExpiresAt time.Time
	Profile   Profile
}
