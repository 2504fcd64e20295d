// Package identity is the seam to the external identity provider. Credential
// issuance lives elsewhere; this package only extracts a verified, stable
// player id and display name from the token presented on a connection.
package identity

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Identity is a verified player attached to a connection before any
// engine call is made on its behalf.
type Identity struct {
	PlayerID uuid.UUID
	Name     string
}

// ErrInvalidToken is returned when the presented token cannot be verified.
var ErrInvalidToken = errors.New("invalid token")

// Verifier turns a bearer token into a verified player identity.
type Verifier interface {
	Verify(token string) (Identity, error)
}

// JWTVerifier validates HMAC-signed tokens carrying the player id in the
// subject claim and the display name in a "name" claim.
type JWTVerifier struct {
	secret []byte
}

// NewJWTVerifier creates a verifier for tokens signed with the given secret.
func NewJWTVerifier(secret string) *JWTVerifier {
	return &JWTVerifier{secret: []byte(secret)}
}

type playerClaims struct {
	Name string `json:"name"`
	jwt.RegisteredClaims
}

// Verify parses and validates the token and extracts the player identity.
func (v *JWTVerifier) Verify(token string) (Identity, error) {
	var claims playerClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return v.secret, nil
	})
	if err != nil || !parsed.Valid {
		return Identity{}, ErrInvalidToken
	}

	playerID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return Identity{}, fmt.Errorf("%w: bad subject", ErrInvalidToken)
	}

	return Identity{PlayerID: playerID, Name: claims.Name}, nil
}
