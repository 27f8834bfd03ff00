package handler

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"chatrelay/internal/pkg/errs"
	"chatrelay/internal/pkg/req"
	"chatrelay/internal/pkg/resp"
)

// HandleUpload stores a multipart image in the blob store and returns its
// retrievable URL, which the client then references from a message or
// profile. The route is only mounted when uploads are enabled.
func HandleUpload(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if customErr := req.SetupMultipart(w, r); customErr != nil {
			resp.WriteError(w, r, customErr)
			return
		}

		file, header, err := r.FormFile("image")
		if err != nil {
			resp.WriteError(w, r, errs.NewError(errs.ErrNoFileUploaded))
			return
		}
		defer file.Close()

		mimeType := header.Header.Get("Content-Type")
		if !strings.HasPrefix(mimeType, "image/") {
			resp.WriteError(w, r, errs.NewError(errs.ErrInvalidParams))
			return
		}

		ext := strings.ToLower(filepath.Ext(header.Filename))
		key := fmt.Sprintf("uploads/%s%s", uuid.New().String(), ext)

		url, err := deps.Blobs.Upload(r.Context(), key, mimeType, file)
		if err != nil {
			resp.WriteError(w, r, errs.NewError(errs.ErrStorageFailed, err))
			return
		}

		resp.WriteOK(w, r, map[string]any{
			"url":      url,
			"filename": header.Filename,
			"size":     header.Size,
			"mimeType": mimeType,
		})
	}
}
