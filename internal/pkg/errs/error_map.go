package errs

import "net/http"

// errorMap holds the client-facing message and HTTP status for every code.
var errorMap = map[int]CustomError{
	ErrInvalidParams:         {Code: ErrInvalidParams, Message: "Invalid request parameters.", Status: http.StatusBadRequest},
	ErrUnsupportedMediaType:  {Code: ErrUnsupportedMediaType, Message: "Unsupported request format.", Status: http.StatusBadRequest},
	ErrInvalidJSONFormat:     {Code: ErrInvalidJSONFormat, Message: "Unsupported request format.", Status: http.StatusBadRequest},
	ErrExtraContentInBody:    {Code: ErrExtraContentInBody, Message: "Request contains unexpected data.", Status: http.StatusBadRequest},
	ErrFormParseFailed:       {Code: ErrFormParseFailed, Message: "Failed to process uploaded data.", Status: http.StatusBadRequest},
	ErrRequestEntityTooLarge: {Code: ErrRequestEntityTooLarge, Message: "Request size is too large.", Status: http.StatusRequestEntityTooLarge},
	ErrRateLimitExceeded:     {Code: ErrRateLimitExceeded, Message: "Too many requests. Please try again later.", Status: http.StatusTooManyRequests},

	ErrEmptyMessage:    {Code: ErrEmptyMessage, Message: "Message content or image is required.", Status: http.StatusBadRequest},
	ErrAmbiguousTarget: {Code: ErrAmbiguousTarget, Message: "Message cannot target both a room and a receiver.", Status: http.StatusBadRequest},
	ErrMissingTarget:   {Code: ErrMissingTarget, Message: "Message must target a room or a receiver.", Status: http.StatusBadRequest},
	ErrInvalidUsername: {Code: ErrInvalidUsername, Message: "Invalid username.", Status: http.StatusBadRequest},
	ErrInvalidPassword: {Code: ErrInvalidPassword, Message: "Invalid password.", Status: http.StatusBadRequest},
	ErrUsernameTaken:   {Code: ErrUsernameTaken, Message: "username exists", Status: http.StatusBadRequest},
	ErrNoFileUploaded:  {Code: ErrNoFileUploaded, Message: "No file uploaded.", Status: http.StatusBadRequest},

	ErrUnauthorized:       {Code: ErrUnauthorized, Message: "unauthorized", Status: http.StatusUnauthorized},
	ErrInvalidCredentials: {Code: ErrInvalidCredentials, Message: "Invalid username or password", Status: http.StatusUnauthorized},

	ErrUserNotFound: {Code: ErrUserNotFound, Message: "User not found.", Status: http.StatusNotFound},

	ErrUnknown:       {Code: ErrUnknown, Message: "Internal server error.", Status: http.StatusInternalServerError},
	ErrStorageFailed: {Code: ErrStorageFailed, Message: "File upload failed. Please try again.", Status: http.StatusInternalServerError},
}
