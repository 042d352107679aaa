package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/dtroode/kioskauth-server/internal/model"
)

// Claims represents session JWT claims.
type Claims struct {
	jwt.RegisteredClaims
	AccountID uuid.UUID  `json:"account_id"`
	Role      model.Role `json:"role"`
	TokenType string     `json:"typ"`
}

// JWT implements TokenManager backed by symmetric HMAC.
type JWT struct {
	secretKey string
	now       func() time.Time
}

// NewJWT creates a new JWT token manager with the provided secret key.
func NewJWT(secretKey string) model.TokenManager {
	return &JWT{secretKey: secretKey, now: time.Now}
}

const (
	issuer      = "kioskauth"
	typeSession = "session"
)

// GenerateSessionToken signs a session token for accountID valid for ttl.
func (j *JWT) GenerateSessionToken(accountID uuid.UUID, role model.Role, ttl time.Duration) (string, time.Time, error) {
	now := j.now()
	expiresAt := now.Add(ttl)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    issuer,
			Subject:   accountID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		AccountID: accountID,
		Role:      role,
		TokenType: typeSession,
	})

	tokenString, err := token.SignedString([]byte(j.secretKey))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign session token: %w", err)
	}

	return tokenString, expiresAt, nil
}

// ParseSessionToken validates a session token and returns its claims.
// Any failure is reported as model.ErrInvalidToken.
func (j *JWT) ParseSessionToken(tokenString string) (model.SessionClaims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("wrong signing method %v", t.Header["alg"])
		}
		return []byte(j.secretKey), nil
	},
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(j.now),
	)
	if err != nil {
		return model.SessionClaims{}, errors.Join(model.ErrInvalidToken, fmt.Errorf("failed to parse session token: %w", err))
	}
	if !token.Valid {
		return model.SessionClaims{}, model.ErrInvalidToken
	}
	if claims.TokenType != typeSession {
		return model.SessionClaims{}, fmt.Errorf("%w: token type mismatch: %s", model.ErrInvalidToken, claims.TokenType)
	}
	if claims.AccountID == uuid.Nil {
		return model.SessionClaims{}, fmt.Errorf("%w: missing account id", model.ErrInvalidToken)
	}

	return model.SessionClaims{
		ID:        claims.ID,
		AccountID: claims.AccountID,
		Role:      claims.Role,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}
