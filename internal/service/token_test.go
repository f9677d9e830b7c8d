package service

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestTokenManager_RoundTrip(t *testing.T) {
	manager := NewTokenManager("test-secret-for-unit-tests-only", time.Hour)
	principal := uuid.New()

	token, err := manager.GenerateAccess(principal)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	parsed, err := manager.ParseAccess(token)
	assert.NoError(t, err)
	assert.Equal(t, principal, parsed)
}

func TestTokenManager_ParseAccess_WrongSecret(t *testing.T) {
	issuer := NewTokenManager("secret-one", time.Hour)
	verifier := NewTokenManager("secret-two", time.Hour)

	token, err := issuer.GenerateAccess(uuid.New())
	assert.NoError(t, err)

	_, err = verifier.ParseAccess(token)
	assert.Error(t, err)
}

func TestTokenManager_ParseAccess_Expired(t *testing.T) {
	manager := NewTokenManager("test-secret-for-unit-tests-only", -time.Minute)

	token, err := manager.GenerateAccess(uuid.New())
	assert.NoError(t, err)

	_, err = manager.ParseAccess(token)
	assert.Error(t, err)
}

func TestTokenManager_ParseAccess_Garbage(t *testing.T) {
	manager := NewTokenManager("test-secret-for-unit-tests-only", time.Hour)

	_, err := manager.ParseAccess("не.токен.вовсе")
	assert.Error(t, err)
}

func TestTokenManager_ParseAccess_NonUUIDSubject(t *testing.T) {
	secret := "test-secret-for-unit-tests-only"
	claims := jwt.RegisteredClaims{
		Subject:   "user-42",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	assert.NoError(t, err)

	manager := NewTokenManager(secret, time.Hour)
	_, err = manager.ParseAccess(signed)
	assert.Error(t, err)
}
