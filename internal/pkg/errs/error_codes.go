/*
Package errs defines the application error taxonomy.

Every failure surfaced to a client belongs to one of four classes, each with
its own code range and HTTP status: validation (1xxx, 400), auth (3xxx, 401),
not found (4xxx, 404) and internal (5xxx, 500). Internal detail is logged
server-side and never leaks into the response body.
*/
package errs

// 1xxx: validation errors (malformed or incomplete input).
const (
	// ErrInvalidParams indicates that request parameter validation failed.
	ErrInvalidParams = 1001

	// ErrUnsupportedMediaType indicates an unsupported Content-Type header.
	ErrUnsupportedMediaType = 1002

	// ErrInvalidJSONFormat indicates a syntactically invalid JSON body.
	ErrInvalidJSONFormat = 1003

	// ErrExtraContentInBody indicates trailing content after valid JSON data.
	ErrExtraContentInBody = 1004

	// ErrFormParseFailed indicates failure to parse multipart form data.
	ErrFormParseFailed = 1005

	// ErrRequestEntityTooLarge indicates the request body exceeded the server limit.
	ErrRequestEntityTooLarge = 1006

	// ErrRateLimitExceeded indicates the per-IP request budget was exhausted.
	ErrRateLimitExceeded = 1007

	// ErrEmptyMessage indicates a message with neither content nor an image.
	ErrEmptyMessage = 1101

	// ErrAmbiguousTarget indicates a message addressed to both a room and a receiver.
	ErrAmbiguousTarget = 1102

	// ErrMissingTarget indicates a message addressed to neither a room nor a receiver.
	ErrMissingTarget = 1103

	// ErrInvalidUsername indicates a username outside the allowed format.
	ErrInvalidUsername = 1201

	// ErrInvalidPassword indicates a password outside the allowed length bounds.
	ErrInvalidPassword = 1202

	// ErrUsernameTaken indicates the requested username is already registered.
	ErrUsernameTaken = 1203

	// ErrNoFileUploaded indicates a multipart upload without an image part.
	ErrNoFileUploaded = 1301
)

// 3xxx: authentication errors. The wording is deliberately uniform so the
// response never distinguishes an unknown user from a wrong password.
const (
	// ErrUnauthorized indicates a missing, invalid or expired session credential.
	ErrUnauthorized = 3001

	// ErrInvalidCredentials indicates a failed username/password check.
	ErrInvalidCredentials = 3002
)

// 4xxx: references to things that do not exist.
const (
	// ErrUserNotFound indicates a reference to a nonexistent user.
	ErrUserNotFound = 4001
)

// 5xxx: internal errors.
const (
	// ErrUnknown represents an unclassified server-side failure.
	ErrUnknown = 5000

	// ErrStorageFailed indicates the blob store rejected or dropped an upload.
	ErrStorageFailed = 5001
)
