package jwt

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotel-frontdesk/config"
)

func newTestService(expiry time.Duration) *SessionTokenService {
	return NewSessionTokenService(config.SessionConfig{
		Secret: "test-secret",
		Expiry: expiry,
	})
}

func TestGenerateAndValidateToken(t *testing.T) {
	svc := newTestService(time.Hour)
	operatorID := uuid.New()

	token, tokenID, err := svc.GenerateToken(operatorID, "frontdesk@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.NotEmpty(t, tokenID)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)

	assert.Equal(t, operatorID, claims.OperatorID)
	assert.Equal(t, "frontdesk@example.com", claims.Email)
	assert.Equal(t, tokenID, claims.TokenID)
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	token, _, err := newTestService(time.Hour).GenerateToken(uuid.New(), "a@example.com")
	require.NoError(t, err)

	other := NewSessionTokenService(config.SessionConfig{Secret: "different", Expiry: time.Hour})
	_, err = other.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateTokenRejectsExpired(t *testing.T) {
	svc := newTestService(-time.Minute)
	token, _, err := svc.GenerateToken(uuid.New(), "a@example.com")
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	_, err := newTestService(time.Hour).ValidateToken("not.a.token")
	assert.Error(t, err)
}
