package session

import "github.com/golang-jwt/jwt"

// Identity is the verified caller identity handlers read from the request
// context. It is the single source of truth for who is making a request.
type Identity struct {
	UserID   string
	Username string
}

// Claims is the JWT claim set embedded in a session credential.
type Claims struct {
	// StandardClaims carries exp, iat and iss, which drive validity checks.
	jwt.StandardClaims

	UserID   string `json:"userId"`
	Username string `json:"username"`
}
