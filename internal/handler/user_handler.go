package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"chatrelay/internal/app/store"
	"chatrelay/internal/pkg/auth/session"
	"chatrelay/internal/pkg/errs"
	"chatrelay/internal/pkg/req"
	"chatrelay/internal/pkg/resp"
)

// HandleListUsers returns every user except the caller (or the explicit
// excludeId), online first then by username. The ordering is part of the
// client contract: active conversants surface at the top of the list.
func HandleListUsers(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, ok := session.IdentityFromContext(r.Context())
		if !ok {
			resp.WriteError(w, r, errs.NewError(errs.ErrUnauthorized))
			return
		}

		excludeID := r.URL.Query().Get("excludeId")
		if excludeID == "" {
			excludeID = identity.UserID
		}

		users, err := deps.Store.ListUsers(r.Context(), excludeID)
		if err != nil {
			resp.WriteError(w, r, translateStoreErr(err))
			return
		}

		resp.WriteOK(w, r, map[string]any{"users": users})
	}
}

type UpdateProfileInput struct {
	DisplayName  *string `json:"displayName"`
	ProfileImage *string `json:"profileImage"`
}

// HandleUpdateProfile updates the caller's display name and/or profile
// image. When the profile image is replaced and the old one lives in the
// blob store, the old object is deleted in the background.
func HandleUpdateProfile(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, ok := session.IdentityFromContext(r.Context())
		if !ok {
			resp.WriteError(w, r, errs.NewError(errs.ErrUnauthorized))
			return
		}

		var input UpdateProfileInput
		if customErr := req.BindJSON(r, &input); customErr != nil {
			resp.WriteError(w, r, customErr)
			return
		}

		oldUser, err := deps.Store.GetByID(r.Context(), identity.UserID)
		if err != nil {
			resp.WriteError(w, r, translateStoreErr(err))
			return
		}

		user, err := deps.Store.UpdateProfile(r.Context(), identity.UserID, store.ProfileUpdate{
			DisplayName:  input.DisplayName,
			ProfileImage: input.ProfileImage,
		})
		if err != nil {
			resp.WriteError(w, r, translateStoreErr(err))
			return
		}

		if deps.Blobs != nil && input.ProfileImage != nil &&
			oldUser.ProfileImage != "" && oldUser.ProfileImage != user.ProfileImage {
			if key := blobKey(deps, oldUser.ProfileImage); key != "" {
				go func(k string) {
					ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
					defer cancel()
					_ = deps.Blobs.Delete(ctx, k)
				}(key)
			}
		}

		resp.WriteOK(w, r, map[string]any{"user": user})
	}
}

// blobKey recovers the object key from a URL minted by the blob store.
// Foreign URLs yield "" and are left alone.
func blobKey(deps *AppDeps, url string) string {
	base := deps.Blobs.URL("")
	if base == "" || !strings.HasPrefix(url, base) {
		return ""
	}
	return strings.TrimPrefix(url, base)
}
