package shared

import "errors"

var (
	// ErrNotFound indicates the requested record does not exist.
	ErrNotFound = errors.New("not found")
	// ErrInvalidCredentials indicates login failure. Unknown usernames and
	// wrong passwords both collapse to this error so callers cannot probe
	// which usernames are registered.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrDuplicateUsername indicates a registration conflict.
	ErrDuplicateUsername = errors.New("username already taken")
	// ErrCSRFTokenMissing occurs when CSRF token missing.
	ErrCSRFTokenMissing = errors.New("csrf token missing")
	// ErrCSRFTokenMismatch occurs when CSRF tokens do not match.
	ErrCSRFTokenMismatch = errors.New("csrf token mismatch")
)
