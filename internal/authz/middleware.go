package authz

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/doma17/SessionSecurity/internal/platform/httpx"
)

// Guard enforces the rule table for every request. It expects an upstream
// middleware to have resolved the principal into the request context.
type Guard struct {
	Table  *Table
	Logger *slog.Logger
}

// Authorize evaluates the rule table before the wrapped handler runs.
// RequireAuth sends browsers to the login page; clients that arrived with
// an Authorization header get a 401 challenge instead so HTTP Basic flows
// can retry. Deny is always a terminal 403.
func (g Guard) Authorize(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		principal := PrincipalFromContext(r.Context())
		decision := g.Table.Decide(r.URL.Path, principal)
		switch decision {
		case Allow:
			next.ServeHTTP(w, r)
		case RequireAuth:
			if wantsChallenge(r) {
				w.Header().Set("WWW-Authenticate", `Basic realm="restricted"`)
				httpx.Problem(w, http.StatusUnauthorized, "Unauthorized", "authentication required")
				return
			}
			http.Redirect(w, r, "/login", http.StatusSeeOther)
		default:
			if g.Logger != nil {
				g.Logger.Warn("request forbidden",
					slog.String("path", r.URL.Path),
					slog.String("user", principal.Username))
			}
			if wantsChallenge(r) {
				httpx.Problem(w, http.StatusForbidden, "Forbidden", "insufficient role")
				return
			}
			http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
		}
	})
}

func wantsChallenge(r *http.Request) bool {
	if r.Header.Get("Authorization") != "" {
		return true
	}
	accept := r.Header.Get("Accept")
	return accept != "" && !strings.Contains(accept, "text/html")
}
