package service

import (
	"fmt"
	"time"

	"github.com/dtroode/kioskauth-server/internal/model"
)

// DefaultSessionTTL is the lifetime of a kiosk session token.
const DefaultSessionTTL = 24 * time.Hour

// SessionIssuer turns an authenticated account into a session and verifies
// presented session tokens.
type SessionIssuer struct {
	manager model.TokenManager
	ttl     time.Duration
}

func NewSessionIssuer(manager model.TokenManager, ttl time.Duration) *SessionIssuer {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &SessionIssuer{manager: manager, ttl: ttl}
}

// Issue signs a session token for account. The returned profile never
// carries biometric or lockout fields.
func (s *SessionIssuer) Issue(account model.Account) (model.Session, error) {
	token, expiresAt, err := s.manager.GenerateSessionToken(account.ID, account.Role, s.ttl)
	if err != nil {
		return model.Session{}, fmt.Errorf("failed to generate session token: %w", err)
	}

	return model.Session{
		Token:     token,
		ExpiresAt: expiresAt,
		Profile:   account.Profile(),
	}, nil
}

// Verify parses token and returns its principal.
func (s *SessionIssuer) Verify(token string) (model.Principal, error) {
	claims, err := s.manager.ParseSessionToken(token)
	if err != nil {
		return model.Principal{}, err
	}
	return model.Principal{AccountID: claims.AccountID, Role: claims.Role}, nil
}
