package shared

import (
	"net/http"
	"time"

	"github.com/go-chi/httprate"
)

// CredentialRateLimit throttles credential-bearing endpoints harder than
// the global per-IP limit to slow brute forcing. bcrypt's work factor
// bounds a single attempt; this bounds the attempt rate.
func CredentialRateLimit() func(http.Handler) http.Handler {
	return httprate.Limit(10, time.Minute, httprate.WithKeyFuncs(httprate.KeyByIP))
}
