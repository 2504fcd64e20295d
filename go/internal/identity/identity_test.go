package identity

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signToken(t *testing.T, secret string, playerID uuid.UUID, name string) string {
	t.Helper()
	claims := playerClaims{
		Name: name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   playerID.String(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func TestJWTVerifier(t *testing.T) {
	playerID := uuid.New()
	v := NewJWTVerifier("test-secret")

	ident, err := v.Verify(signToken(t, "test-secret", playerID, "alice"))
	require.NoError(t, err)
	assert.Equal(t, playerID, ident.PlayerID)
	assert.Equal(t, "alice", ident.Name)
}

func TestJWTVerifierRejectsWrongSecret(t *testing.T) {
	v := NewJWTVerifier("test-secret")

	_, err := v.Verify(signToken(t, "other-secret", uuid.New(), "alice"))
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTVerifierRejectsGarbage(t *testing.T) {
	v := NewJWTVerifier("test-secret")

	_, err := v.Verify("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTVerifierRejectsBadSubject(t *testing.T) {
	claims := playerClaims{
		Name: "alice",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "not-a-uuid",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = NewJWTVerifier("test-secret").Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
