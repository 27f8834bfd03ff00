/*
Package handler provides the HTTP handlers and routing for the chat server.

This file covers registration, login and logout. Login and logout are the
only places presence changes; the session gate itself never touches it.
*/
package handler

import (
	"net/http"
	"regexp"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"

	"chatrelay/internal/app/store"
	"chatrelay/internal/pkg/auth/session"
	"chatrelay/internal/pkg/errs"
	"chatrelay/internal/pkg/logx"
	"chatrelay/internal/pkg/req"
	"chatrelay/internal/pkg/resp"
)

var usernameRegex = regexp.MustCompile(`^[a-z0-9_]{3,20}$`)

// setSessionCookie attaches the credential as an HTTP-only, same-site-strict
// cookie with the codec's validity window.
func setSessionCookie(w http.ResponseWriter, deps *AppDeps, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     session.CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(deps.Codec.TTL().Seconds()),
		HttpOnly: true,
		Secure:   !deps.Config.IsDevelopment(),
		SameSite: http.SameSiteStrictMode,
	})
}

// clearSessionCookie drops the client-held credential. The token itself
// stays valid until expiry; there is no server-side revocation.
func clearSessionCookie(w http.ResponseWriter, deps *AppDeps) {
	http.SetCookie(w, &http.Cookie{
		Name:     session.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   !deps.Config.IsDevelopment(),
		SameSite: http.SameSiteStrictMode,
	})
}

type RegisterInput struct {
	Username    string `json:"username" validate:"required"`
	Password    string `json:"password" validate:"required"`
	DisplayName string `json:"displayName"`
}

// HandleRegister creates a new account. Uniqueness is enforced by the store,
// not by a lookup here, so two racing registrations cannot both win.
// Registration does not set a session cookie; the client logs in afterwards.
func HandleRegister(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input RegisterInput
		if customErr := req.BindJSON(r, &input); customErr != nil {
			resp.WriteError(w, r, customErr)
			return
		}

		if !usernameRegex.MatchString(input.Username) {
			resp.WriteError(w, r, errs.NewError(errs.ErrInvalidUsername))
			return
		}

		passwordLen := utf8.RuneCountInString(input.Password)
		if passwordLen < 6 || passwordLen > 72 {
			resp.WriteError(w, r, errs.NewError(errs.ErrInvalidPassword))
			return
		}

		displayName := input.DisplayName
		if displayName == "" {
			displayName = input.Username
		}

		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
		if err != nil {
			resp.WriteError(w, r, errs.NewError(errs.ErrUnknown, err))
			return
		}

		user, err := deps.Store.Create(r.Context(), store.NewUserParams{
			Username:     input.Username,
			PasswordHash: string(hashedPassword),
			DisplayName:  displayName,
		})
		if err != nil {
			resp.WriteError(w, r, translateStoreErr(err))
			return
		}

		resp.WriteCreated(w, r, map[string]any{
			"user": map[string]any{
				"id":          user.ID,
				"username":    user.Username,
				"displayName": user.DisplayName,
			},
		})
	}
}

type LoginInput struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// HandleLogin checks credentials, flips presence online and issues the
// session cookie. Unknown user and wrong password produce the same response.
func HandleLogin(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input LoginInput
		if customErr := req.BindJSON(r, &input); customErr != nil {
			resp.WriteError(w, r, customErr)
			return
		}

		user, err := deps.Store.GetByUsername(r.Context(), input.Username)
		if err != nil {
			logx.Warn("login: user lookup failed", "username", input.Username)
			resp.WriteError(w, r, errs.NewError(errs.ErrInvalidCredentials))
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
			logx.Warn("login: password mismatch", "username", input.Username)
			resp.WriteError(w, r, errs.NewError(errs.ErrInvalidCredentials))
			return
		}

		if err := deps.Store.SetPresence(r.Context(), user.ID, true); err != nil {
			resp.WriteError(w, r, errs.NewError(errs.ErrUnknown, err))
			return
		}

		token, err := deps.Codec.Issue(user.ID, user.Username)
		if err != nil {
			resp.WriteError(w, r, errs.NewError(errs.ErrUnknown, err))
			return
		}

		setSessionCookie(w, deps, token)

		resp.WriteOK(w, r, map[string]any{
			"user": map[string]any{
				"id":           user.ID,
				"username":     user.Username,
				"displayName":  user.DisplayName,
				"profileImage": user.ProfileImage,
			},
		})
	}
}

// HandleLogout flips presence offline and clears the cookie.
func HandleLogout(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, ok := session.IdentityFromContext(r.Context())
		if !ok {
			resp.WriteError(w, r, errs.NewError(errs.ErrUnauthorized))
			return
		}

		if err := deps.Store.SetPresence(r.Context(), identity.UserID, false); err != nil {
			logx.Error(err, "logout: failed to update presence", "user_id", identity.UserID)
		}

		clearSessionCookie(w, deps)

		resp.WriteOK(w, r, map[string]any{"message": "Logout successful"})
	}
}
