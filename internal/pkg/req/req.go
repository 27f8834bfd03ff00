/*
Package req parses and validates HTTP request input.

JSON bodies are decoded strictly (unknown fields and trailing content are
rejected) and then run through go-playground/validator when the destination
struct carries validate tags. Multipart parsing enforces the request size cap.
*/
package req

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"chatrelay/internal/pkg/errs"
)

const (
	// MaxFormMemory is the in-memory budget for non-file multipart fields.
	MaxFormMemory int64 = 32 << 20 // 32 MB

	// MaxRequestFileSize caps the whole request body, files included.
	MaxRequestFileSize int64 = 20 << 20 // 20 MB
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// BindJSON decodes the request body into dst and validates it.
func BindJSON(r *http.Request, dst any) *errs.CustomError {
	contentType := r.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "application/json") {
		return errs.NewError(errs.ErrUnsupportedMediaType)
	}

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dst); err != nil {
		return errs.NewError(errs.ErrInvalidJSONFormat)
	}

	if decoder.More() {
		return errs.NewError(errs.ErrExtraContentInBody)
	}

	if err := validate.Struct(dst); err != nil {
		return errs.NewError(errs.ErrInvalidParams)
	}

	return nil
}

// SetupMultipart caps the body size and parses the multipart form.
func SetupMultipart(w http.ResponseWriter, r *http.Request) *errs.CustomError {
	r.Body = http.MaxBytesReader(w, r.Body, MaxRequestFileSize)

	if err := r.ParseMultipartForm(MaxFormMemory); err != nil {
		if strings.Contains(err.Error(), "request body too large") {
			return errs.NewError(errs.ErrRequestEntityTooLarge)
		}
		return errs.NewError(errs.ErrFormParseFailed)
	}

	return nil
}
