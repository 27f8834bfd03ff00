package errs

import (
	"fmt"

	"chatrelay/internal/pkg/logx"
)

// CustomError is the error type handlers pass to the response layer.
// It carries a business code, a client-safe message and an HTTP status.
type CustomError struct {
	Code    int
	Message string
	Status  int
}

// Error implements the error interface.
func (e CustomError) Error() string {
	return fmt.Sprintf("error code %d (HTTP %d): %s", e.Code, e.Status, e.Message)
}

// NewError builds a *CustomError for a predefined code. An unknown code
// degrades to ErrUnknown. When cause is supplied for an internal-class code,
// it is logged here so handlers do not need a separate logging call; the
// cause never reaches the client.
func NewError(code int, cause ...error) *CustomError {
	templateErr, ok := errorMap[code]
	if !ok {
		logx.Error(
			fmt.Errorf("unknown error code %d requested", code),
			"error code missing from errorMap",
		)
		templateErr = errorMap[ErrUnknown]
	}

	if len(cause) > 0 && cause[0] != nil && templateErr.Code >= 5000 {
		logx.Error(cause[0], "internal error", "code", templateErr.Code)
	}

	customErr := templateErr
	return &customErr
}
