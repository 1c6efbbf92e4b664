package httpx

import (
	"errors"
	"net/http"

	"github.com/doma17/SessionSecurity/internal/shared"
)

// RespondError maps domain errors to RFC7807 responses for non-HTML
// clients. Credential failures stay a generic 401 so the response never
// reveals whether the username exists.
func RespondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, shared.ErrInvalidCredentials):
		Problem(w, http.StatusUnauthorized, "Unauthorized", "invalid credentials")
	case errors.Is(err, shared.ErrDuplicateUsername):
		Problem(w, http.StatusConflict, "Conflict", err.Error())
	case errors.Is(err, shared.ErrNotFound):
		Problem(w, http.StatusNotFound, "Not Found", err.Error())
	default:
		Problem(w, http.StatusInternalServerError, "Internal Error", "")
	}
}
