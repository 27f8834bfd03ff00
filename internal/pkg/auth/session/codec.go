/*
Package session implements the stateless session credential: a signed,
time-limited token carrying the authenticated identity, and the gate that
checks it on every inbound request.

Tokens are never stored or revoked server-side; logout only clears the
client-held copy. A token stays valid until its expiry instant.
*/
package session

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt"
)

const (
	// DefaultTTL is the session credential validity window.
	DefaultTTL = 7 * 24 * time.Hour

	// TokenIssuer identifies tokens minted by this server.
	TokenIssuer = "chatrelay"
)

// ErrInvalidToken is returned by Verify for every failure mode: malformed
// input, wrong signature or expiry. Callers cannot tell them apart.
var ErrInvalidToken = errors.New("invalid or expired session token")

// Codec issues and verifies session credentials with an explicit signing
// secret, so tests can run isolated instances with their own keys.
type Codec struct {
	secret []byte
	ttl    time.Duration
}

// NewCodec returns a Codec signing with secret. A non-positive ttl falls back
// to DefaultTTL.
func NewCodec(secret string, ttl time.Duration) *Codec {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Codec{secret: []byte(secret), ttl: ttl}
}

// TTL returns the validity window tokens are issued with.
func (c *Codec) TTL() time.Duration {
	return c.ttl
}

// Issue signs a credential for the given user, valid for the codec's TTL.
func (c *Codec) Issue(userID, username string) (string, error) {
	now := time.Now()

	claims := &Claims{
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: now.Add(c.ttl).Unix(),
			IssuedAt:  now.Unix(),
			Issuer:    TokenIssuer,
		},
		UserID:   userID,
		Username: username,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	return token.SignedString(c.secret)
}

// Verify parses and validates a credential string. On success it returns the
// embedded identity; on any failure it returns ErrInvalidToken.
func (c *Codec) Verify(tokenString string) (Identity, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return c.secret, nil
	})

	if err != nil || !token.Valid {
		return Identity{}, ErrInvalidToken
	}

	return Identity{UserID: claims.UserID, Username: claims.Username}, nil
}
