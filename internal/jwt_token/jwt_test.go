package jwttoken

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "claimsys/pkg/domain-errors"
)

func TestGenerateAndValidate(t *testing.T) {
	svc := NewJWTService("test-key", "claimsys")

	token, err := svc.GenerateToken("agent_smith")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "agent_smith", claims.Username)
	assert.Equal(t, "claimsys", claims.Issuer)
	assert.NotEmpty(t, claims.ID)

	lifetime := claims.ExpiresAt.Sub(claims.IssuedAt.Time)
	assert.Equal(t, TokenLifetime, lifetime)
}

func TestValidateRejectsWrongKey(t *testing.T) {
	token, err := NewJWTService("key-one", "claimsys").GenerateToken("agent_smith")
	require.NoError(t, err)

	_, err = NewJWTService("key-two", "claimsys").Validate(token)
	assert.True(t, dErrors.Is(err, dErrors.CodeUnauthorized))
}

func TestValidateRejectsGarbage(t *testing.T) {
	svc := NewJWTService("test-key", "claimsys")
	_, err := svc.Validate("not.a.token")
	assert.True(t, dErrors.Is(err, dErrors.CodeUnauthorized))
}
