package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTTokenRoundTrip(t *testing.T) {
	token, err := CreateJWTToken(42, "alice@example.com", "secret")
	require.NoError(t, err)

	userID, email, err := ParseJWTToken(token, "secret")
	require.NoError(t, err)
	assert.Equal(t, int64(42), userID)
	assert.Equal(t, "alice@example.com", email)
}

func TestJWTTokenSevenDayExpiry(t *testing.T) {
	token, err := CreateJWTToken(42, "alice@example.com", "secret")
	require.NoError(t, err)

	parsed, err := jwt.Parse(token, func(token *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	require.NoError(t, err)

	claims := parsed.Claims.(jwt.MapClaims)
	exp := int64(claims["exp"].(float64))

	expected := time.Now().Add(time.Hour * 24 * 7).Unix()
	assert.InDelta(t, expected, exp, 60)
}

func TestParseJWTTokenRejectsBadInput(t *testing.T) {
	token, err := CreateJWTToken(42, "alice@example.com", "secret")
	require.NoError(t, err)

	_, _, err = ParseJWTToken(token, "other-secret")
	assert.Error(t, err)

	_, _, err = ParseJWTToken("garbage", "secret")
	assert.Error(t, err)

	_, _, err = ParseJWTToken("", "secret")
	assert.Error(t, err)
}
