package handler

import (
	"net/http"
	"strconv"

	"chatrelay/internal/app/store"
	"chatrelay/internal/pkg/auth/session"
	"chatrelay/internal/pkg/errs"
	"chatrelay/internal/pkg/req"
	"chatrelay/internal/pkg/resp"
)

// queryInt parses an optional integer query parameter, treating absence or
// garbage as the fallback.
func queryInt(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}

// HandleListMessages serves the polling reads. With receiverId it returns
// the private conversation between the caller and that user, which also
// marks the caller's unread messages in it as read. Otherwise it returns a
// room window; an unnamed room means the default room.
func HandleListMessages(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, ok := session.IdentityFromContext(r.Context())
		if !ok {
			resp.WriteError(w, r, errs.NewError(errs.ErrUnauthorized))
			return
		}

		limit := queryInt(r, "limit", 0)
		offset := queryInt(r, "offset", 0)

		var (
			messages []store.Message
			err      error
		)

		if receiverID := r.URL.Query().Get("receiverId"); receiverID != "" {
			messages, err = deps.Store.ListPrivate(r.Context(), identity.UserID, receiverID, limit, offset)
		} else {
			room := r.URL.Query().Get("room")
			if room == "" {
				room = store.DefaultRoom
			}
			messages, err = deps.Store.ListRoom(r.Context(), room, limit, offset)
		}

		if err != nil {
			resp.WriteError(w, r, translateStoreErr(err))
			return
		}

		resp.WriteOK(w, r, map[string]any{"messages": messages})
	}
}

type PostMessageInput struct {
	Content    string `json:"content"`
	ImageURL   string `json:"imageUrl"`
	Room       string `json:"room"`
	ReceiverID string `json:"receiverId"`
}

// HandlePostMessage appends one message to the log. The store enforces the
// addressing invariant: exactly one of room and receiverId.
func HandlePostMessage(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, ok := session.IdentityFromContext(r.Context())
		if !ok {
			resp.WriteError(w, r, errs.NewError(errs.ErrUnauthorized))
			return
		}

		var input PostMessageInput
		if customErr := req.BindJSON(r, &input); customErr != nil {
			resp.WriteError(w, r, customErr)
			return
		}

		message, err := deps.Store.Post(r.Context(), identity.UserID, store.PostMessageParams{
			Content:    input.Content,
			ImageURL:   input.ImageURL,
			Room:       input.Room,
			ReceiverID: input.ReceiverID,
		})
		if err != nil {
			resp.WriteError(w, r, translateStoreErr(err))
			return
		}

		resp.WriteCreated(w, r, map[string]any{"message": message})
	}
}
