/*
Package store owns the message log and the user directory.

Two implementations exist: Postgres (the production store) and an in-memory
store used in development without a database and as the substrate for handler
tests. Both satisfy the same contract:

  - Windowed retrieval returns a most-recent-first window reversed to
    chronological order, and repeating a query with no new data returns an
    identical sequence.
  - Fetching a private conversation flips the viewer's unread messages to
    read in one atomic bulk update; read flags never move back.
  - Username uniqueness is enforced by the storage layer itself, not by a
    check-then-insert in application code.
*/
package store

import (
	"context"
	"errors"
)

// Sentinel errors, checked with errors.Is at the handler boundary.
var (
	// ErrUserExists is returned when the username is already registered.
	ErrUserExists = errors.New("username already exists")

	// ErrNotFound is returned when a referenced user does not exist.
	ErrNotFound = errors.New("user not found")

	// ErrEmptyMessage is returned when a post has neither content nor image.
	ErrEmptyMessage = errors.New("message content or image is required")

	// ErrAmbiguousTarget is returned when a post names both a room and a receiver.
	ErrAmbiguousTarget = errors.New("message cannot target both a room and a receiver")

	// ErrMissingTarget is returned when a post names neither a room nor a receiver.
	ErrMissingTarget = errors.New("message must target a room or a receiver")
)

const (
	defaultWindow = 50
	maxWindow     = 200
)

// UserDirectory is the user-record capability: credential lookup, presence
// and profile mutation, presence-ordered listing.
type UserDirectory interface {
	Create(ctx context.Context, params NewUserParams) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	SetPresence(ctx context.Context, id string, online bool) error
	UpdateProfile(ctx context.Context, id string, update ProfileUpdate) (*User, error)

	// ListUsers returns every user except excludeID, online first, then by
	// username ascending. The ordering is part of the client contract.
	ListUsers(ctx context.Context, excludeID string) ([]User, error)
}

// MessageStore is the append-mostly message log.
type MessageStore interface {
	// ListRoom returns a chronological window of a room's messages.
	// No side effects.
	ListRoom(ctx context.Context, room string, limit, offset int) ([]Message, error)

	// ListPrivate returns a chronological window of the conversation between
	// viewer and other, in both directions. As a side effect, every unread
	// message from other to viewer is marked read; the returned window still
	// shows the flags as they were before the flip.
	ListPrivate(ctx context.Context, viewerID, otherID string, limit, offset int) ([]Message, error)

	// Post validates, timestamps and persists one message, returning it
	// enriched with sender and receiver display attributes.
	Post(ctx context.Context, senderID string, params PostMessageParams) (*Message, error)
}

// Store is the full storage contract the handlers depend on.
type Store interface {
	UserDirectory
	MessageStore
}

// clampWindow bounds a retrieval window to sane values: limit 1..200
// (default 50), offset >= 0.
func clampWindow(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = defaultWindow
	}
	if limit > maxWindow {
		limit = maxWindow
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

// validatePost enforces the message invariants: at least one of content and
// image, and exactly one addressing target.
func validatePost(params PostMessageParams) error {
	if params.Content == "" && params.ImageURL == "" {
		return ErrEmptyMessage
	}
	if params.Room != "" && params.ReceiverID != "" {
		return ErrAmbiguousTarget
	}
	if params.Room == "" && params.ReceiverID == "" {
		return ErrMissingTarget
	}
	return nil
}

// reverse flips a window in place from newest-first storage order to the
// chronological order handed to callers.
func reverse(messages []Message) {
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
}
