package auth_test

import (
	"testing"
	"time"

	"school-service/internal/auth"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndVerify(t *testing.T) {
	manager := auth.NewJWTManager("test-secret")

	token, expiresAt, err := manager.Issue(42)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(auth.TokenTTL), expiresAt, 5*time.Second)

	adminID, err := manager.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, 42, adminID)
}

func TestVerifyWrongKey(t *testing.T) {
	token, _, err := auth.NewJWTManager("key-one").Issue(1)
	require.NoError(t, err)

	_, err = auth.NewJWTManager("key-two").Verify(token)
	assert.Error(t, err)
}

func TestVerifyWrongIssuer(t *testing.T) {
	claims := jwt.RegisteredClaims{
		Issuer:    "someone-else",
		Subject:   "1",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = auth.NewJWTManager("test-secret").Verify(token)
	assert.Error(t, err)
}

func TestVerifyExpired(t *testing.T) {
	claims := jwt.RegisteredClaims{
		Issuer:    auth.Issuer,
		Subject:   "1",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = auth.NewJWTManager("test-secret").Verify(token)
	assert.Error(t, err)
}

func TestVerifyGarbage(t *testing.T) {
	_, err := auth.NewJWTManager("test-secret").Verify("not-a-token")
	assert.Error(t, err)
}
