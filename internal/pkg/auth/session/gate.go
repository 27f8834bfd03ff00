package session

import (
	"context"
	"net/http"
	"strings"

	"chatrelay/internal/pkg/errs"
	"chatrelay/internal/pkg/logx"
	"chatrelay/internal/pkg/resp"
)

// CookieName is the cookie carrying the session credential in browsers.
// API clients may instead send it as a bearer token.
const CookieName = "token"

const (
	loginPath = "/login"
	chatPath  = "/chat"
)

// RouteClass is the static classification every route falls into.
type RouteClass int

const (
	// Public routes bypass credential verification entirely.
	Public RouteClass = iota

	// AuthOnly routes (the login and registration pages) redirect a caller
	// who already holds a valid session.
	AuthOnly

	// Protected routes require a valid, unexpired credential.
	Protected
)

type contextKey string

const identityContextKey contextKey = "session_identity"

// Classify returns the route class for a request path. Everything not listed
// as public or auth-only is protected.
func Classify(path string) RouteClass {
	switch path {
	case "/health", "/api/auth/login", "/api/auth/register":
		return Public
	case loginPath, "/register":
		return AuthOnly
	}
	return Protected
}

// Gate is the single chokepoint every request passes before its handler.
// It classifies the route, verifies the session credential and injects the
// identity into the request context. It never mutates presence or token
// state; those are handler responsibilities.
type Gate struct {
	codec *Codec
}

// NewGate returns a Gate verifying credentials with codec.
func NewGate(codec *Codec) *Gate {
	return &Gate{codec: codec}
}

// credential extracts the opaque credential string from the request, cookie
// first, bearer header as fallback. Empty string means none supplied.
func credential(r *http.Request) string {
	if cookie, err := r.Cookie(CookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return parts[1]
}

// Middleware enforces the route classification. Failed verification on a
// protected route yields a 401 body under /api/ and a redirect to the login
// page everywhere else.
func (g *Gate) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := credential(r)

		var identity Identity
		authenticated := false
		if token != "" {
			verified, err := g.codec.Verify(token)
			if err == nil {
				identity = verified
				authenticated = true
			} else {
				logx.Warn("invalid session credential", "path", r.URL.Path)
			}
		}

		switch Classify(r.URL.Path) {
		case Public:
			// No enforcement; handlers may still want to know the caller.

		case AuthOnly:
			if authenticated {
				http.Redirect(w, r, chatPath, http.StatusFound)
				return
			}

		case Protected:
			if !authenticated {
				if strings.HasPrefix(r.URL.Path, "/api/") {
					resp.WriteError(w, r, errs.NewError(errs.ErrUnauthorized))
				} else {
					http.Redirect(w, r, loginPath, http.StatusFound)
				}
				return
			}
		}

		if authenticated {
			ctx := context.WithValue(r.Context(), identityContextKey, identity)
			r = r.WithContext(ctx)
		}

		next.ServeHTTP(w, r)
	})
}

// IdentityFromContext returns the verified identity injected by the gate.
// ok is false on public routes reached without a credential.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	identity, ok := ctx.Value(identityContextKey).(Identity)
	return identity, ok
}
