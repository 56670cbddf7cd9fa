package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTManager_RoundTrip(t *testing.T) {
	m := NewJWTManager("secret", time.Hour)

	token, err := m.GenerateAccessToken("user-1")
	require.NoError(t, err)

	claims, err := m.ParseAndValidate(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "user-1", claims.Subject)
	assert.NotEmpty(t, claims.ID)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, 5*time.Second)
}

func TestJWTManager_UniqueTokenIDs(t *testing.T) {
	m := NewJWTManager("secret", time.Hour)

	a, err := m.GenerateAccessToken("user-1")
	require.NoError(t, err)
	b, err := m.GenerateAccessToken("user-1")
	require.NoError(t, err)

	ca, err := m.ParseAndValidate(a)
	require.NoError(t, err)
	cb, err := m.ParseAndValidate(b)
	require.NoError(t, err)
	assert.NotEqual(t, ca.ID, cb.ID)
}

func TestJWTManager_WrongSecret(t *testing.T) {
	issuer := NewJWTManager("secret-a", time.Hour)
	verifier := NewJWTManager("secret-b", time.Hour)

	token, err := issuer.GenerateAccessToken("user-1")
	require.NoError(t, err)

	_, err = verifier.ParseAndValidate(token)
	assert.Error(t, err)
}

func TestJWTManager_Expired(t *testing.T) {
	m := NewJWTManager("secret", time.Minute)
	issuedAt := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return issuedAt }

	token, err := m.GenerateAccessToken("user-1")
	require.NoError(t, err)

	m.now = func() time.Time { return issuedAt.Add(2 * time.Minute) }
	_, err = m.ParseAndValidate(token)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestJWTManager_RejectsNoneAlgorithm(t *testing.T) {
	m := NewJWTManager("secret", time.Hour)

	claims := &Claims{
		UserID: "user-1",
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        "jti",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = m.ParseAndValidate(unsigned)
	assert.Error(t, err)
}
