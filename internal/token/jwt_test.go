package token

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/kioskauth-server/internal/model"
)

func TestJWT_SessionToken_Roundtrip(t *testing.T) {
	j := NewJWT("secret")
	u := uuid.New()

	token, expiresAt, err := j.GenerateSessionToken(u, model.RoleStudent, 24*time.Hour)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), expiresAt, 5*time.Second)

	claims, err := j.ParseSessionToken(token)
	require.NoError(t, err)
	assert.Equal(t, u, claims.AccountID)
	assert.Equal(t, model.RoleStudent, claims.Role)
	assert.NotEmpty(t, claims.ID)
	assert.WithinDuration(t, expiresAt, claims.ExpiresAt, time.Second)
}

func TestJWT_WrongSecret(t *testing.T) {
	token, _, err := NewJWT("secret").GenerateSessionToken(uuid.New(), model.RoleAdmin, time.Hour)
	require.NoError(t, err)

	_, err = NewJWT("other").ParseSessionToken(token)
	assert.ErrorIs(t, err, model.ErrInvalidToken)
}

func TestJWT_ExpiryValidation(t *testing.T) {
	issued := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	j := &JWT{secretKey: "secret", now: func() time.Time { return issued }}

	token, _, err := j.GenerateSessionToken(uuid.New(), model.RoleStudent, 24*time.Hour)
	require.NoError(t, err)

	j.now = func() time.Time { return issued.Add(23 * time.Hour) }
	_, err = j.ParseSessionToken(token)
	require.NoError(t, err)

	j.now = func() time.Time { return issued.Add(25 * time.Hour) }
	_, err = j.ParseSessionToken(token)
	assert.ErrorIs(t, err, model.ErrInvalidToken)
}

func TestJWT_TokenType_Mismatch(t *testing.T) {
	j := &JWT{secretKey: "secret", now: time.Now}
	now := time.Now()

	foreign := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
		AccountID: uuid.New(),
		TokenType: "refresh",
	})
	signed, err := foreign.SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = j.ParseSessionToken(signed)
	assert.ErrorIs(t, err, model.ErrInvalidToken)
}

func TestJWT_RejectsNoneAlgorithm(t *testing.T) {
	j := &JWT{secretKey: "secret", now: time.Now}

	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		AccountID: uuid.New(),
		TokenType: typeSession,
	})
	signed, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = j.ParseSessionToken(signed)
	assert.ErrorIs(t, err, model.ErrInvalidToken)
}
