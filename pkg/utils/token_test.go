package utils

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	signed, err := GenerateToken(42, true, false)
	require.NoError(t, err)

	token, err := ValidateToken(signed)
	require.NoError(t, err)
	require.True(t, token.Valid)

	claims, ok := token.Claims.(jwt.MapClaims)
	require.True(t, ok)
	assert.Equal(t, float64(42), claims["user_id"])
	assert.Equal(t, true, claims["is_doctor"])
	assert.Equal(t, false, claims["is_patient"])
	assert.NotNil(t, claims["exp"])
}

func TestValidateTokenRejectsTampering(t *testing.T) {
	signed, err := GenerateToken(42, false, true)
	require.NoError(t, err)

	_, err = ValidateToken(signed + "x")
	assert.Error(t, err)
}

func TestValidateTokenRejectsUnsignedAlg(t *testing.T) {
	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"user_id": 42})
	encoded, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = ValidateToken(encoded)
	assert.Error(t, err)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("secret123")
	require.NoError(t, err)
	assert.NotEqual(t, "secret123", hash)

	assert.True(t, CheckPassword("secret123", hash))
	assert.False(t, CheckPassword("wrong", hash))
}

func TestStringToUint64(t *testing.T) {
	assert.Equal(t, uint64(42), StringToUint64("42"))
	assert.Equal(t, uint64(0), StringToUint64("not-a-number"))
	assert.Equal(t, uint64(0), StringToUint64(""))
}
