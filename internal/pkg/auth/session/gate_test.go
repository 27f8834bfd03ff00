package session

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	req := require.New(t)

	req.Equal(Public, Classify("/health"))
	req.Equal(Public, Classify("/api/auth/login"))
	req.Equal(Public, Classify("/api/auth/register"))

	req.Equal(AuthOnly, Classify("/login"))
	req.Equal(AuthOnly, Classify("/register"))

	req.Equal(Protected, Classify("/chat"))
	req.Equal(Protected, Classify("/api/messages"))
	req.Equal(Protected, Classify("/api/users"))
	req.Equal(Protected, Classify("/api/auth/logout"))
}

// gateHarness wires the gate in front of a handler that records the identity
// it observed.
func gateHarness(codec *Codec) (http.Handler, *Identity, *bool) {
	var seen Identity
	var called bool

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		if identity, ok := IdentityFromContext(r.Context()); ok {
			seen = identity
		}
		w.WriteHeader(http.StatusOK)
	})

	return NewGate(codec).Middleware(next), &seen, &called
}

func TestGate_ProtectedAPIWithoutCredential(t *testing.T) {
	req := require.New(t)
	codec := NewCodec("test-secret", time.Hour)
	gate, _, called := gateHarness(codec)

	r := httptest.NewRequest(http.MethodGet, "/api/messages", nil)
	w := httptest.NewRecorder()
	gate.ServeHTTP(w, r)

	req.False(*called)
	req.Equal(http.StatusUnauthorized, w.Code)

	var body map[string]string
	req.NoError(json.Unmarshal(w.Body.Bytes(), &body))
	req.Equal("unauthorized", body["error"])
}

func TestGate_ProtectedPageRedirectsToLogin(t *testing.T) {
	req := require.New(t)
	codec := NewCodec("test-secret", time.Hour)
	gate, _, called := gateHarness(codec)

	r := httptest.NewRequest(http.MethodGet, "/chat", nil)
	w := httptest.NewRecorder()
	gate.ServeHTTP(w, r)

	req.False(*called)
	req.Equal(http.StatusFound, w.Code)
	req.Equal("/login", w.Header().Get("Location"))
}

func TestGate_ExpiredCredentialFailsClosed(t *testing.T) {
	req := require.New(t)
	codec := NewCodec("test-secret", time.Second)
	gate, _, called := gateHarness(codec)

	token, err := codec.Issue("user-1", "alice")
	req.NoError(err)
	time.Sleep(2100 * time.Millisecond)

	r := httptest.NewRequest(http.MethodGet, "/api/messages", nil)
	r.AddCookie(&http.Cookie{Name: CookieName, Value: token})
	w := httptest.NewRecorder()
	gate.ServeHTTP(w, r)

	req.False(*called)
	req.Equal(http.StatusUnauthorized, w.Code)
}

func TestGate_AuthOnlyRedirectsAuthenticatedCaller(t *testing.T) {
	req := require.New(t)
	codec := NewCodec("test-secret", time.Hour)
	gate, _, called := gateHarness(codec)

	token, err := codec.Issue("user-1", "alice")
	req.NoError(err)

	r := httptest.NewRequest(http.MethodGet, "/login", nil)
	r.AddCookie(&http.Cookie{Name: CookieName, Value: token})
	w := httptest.NewRecorder()
	gate.ServeHTTP(w, r)

	req.False(*called)
	req.Equal(http.StatusFound, w.Code)
	req.Equal("/chat", w.Header().Get("Location"))
}

func TestGate_AuthOnlyPassesAnonymousCaller(t *testing.T) {
	req := require.New(t)
	codec := NewCodec("test-secret", time.Hour)
	gate, _, called := gateHarness(codec)

	r := httptest.NewRequest(http.MethodGet, "/login", nil)
	w := httptest.NewRecorder()
	gate.ServeHTTP(w, r)

	req.True(*called)
	req.Equal(http.StatusOK, w.Code)
}

func TestGate_InjectsIdentityOnProtectedRoute(t *testing.T) {
	req := require.New(t)
	codec := NewCodec("test-secret", time.Hour)
	gate, seen, called := gateHarness(codec)

	token, err := codec.Issue("user-1", "alice")
	req.NoError(err)

	r := httptest.NewRequest(http.MethodGet, "/api/messages", nil)
	r.AddCookie(&http.Cookie{Name: CookieName, Value: token})
	w := httptest.NewRecorder()
	gate.ServeHTTP(w, r)

	req.True(*called)
	req.Equal(http.StatusOK, w.Code)
	req.Equal("user-1", seen.UserID)
	req.Equal("alice", seen.Username)
}

func TestGate_BearerHeaderFallback(t *testing.T) {
	req := require.New(t)
	codec := NewCodec("test-secret", time.Hour)
	gate, seen, called := gateHarness(codec)

	token, err := codec.Issue("user-2", "bob")
	req.NoError(err)

	r := httptest.NewRequest(http.MethodGet, "/api/users", nil)
	r.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	gate.ServeHTTP(w, r)

	req.True(*called)
	req.Equal("user-2", seen.UserID)
}
