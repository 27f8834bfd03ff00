package handler

import (
	"errors"

	"chatrelay/internal/app/storage"
	"chatrelay/internal/app/store"
	"chatrelay/internal/configs"
	"chatrelay/internal/pkg/auth/session"
	"chatrelay/internal/pkg/errs"
)

// AppDeps bundles everything the handlers need. Blobs is nil when uploads
// are disabled; the router then leaves the upload route unmounted.
type AppDeps struct {
	Config *configs.AppConfig
	Codec  *session.Codec
	Store  store.Store
	Blobs  storage.BlobStore
}

// translateStoreErr maps store sentinel errors onto the client-facing
// taxonomy. Anything unrecognized becomes an internal error with the cause
// logged and withheld from the response.
func translateStoreErr(err error) *errs.CustomError {
	switch {
	case errors.Is(err, store.ErrEmptyMessage):
		return errs.NewError(errs.ErrEmptyMessage)
	case errors.Is(err, store.ErrAmbiguousTarget):
		return errs.NewError(errs.ErrAmbiguousTarget)
	case errors.Is(err, store.ErrMissingTarget):
		return errs.NewError(errs.ErrMissingTarget)
	case errors.Is(err, store.ErrUserExists):
		return errs.NewError(errs.ErrUsernameTaken)
	case errors.Is(err, store.ErrNotFound):
		return errs.NewError(errs.ErrUserNotFound)
	default:
		return errs.NewError(errs.ErrUnknown, err)
	}
}
