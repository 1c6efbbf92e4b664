package auth

import (
	"log/slog"
	"net/http"

	"github.com/doma17/SessionSecurity/internal/authz"
	"github.com/doma17/SessionSecurity/internal/shared"
)

// Resolver turns transport state into a principal once per request. A
// logged-in session carries the identity resolved at login; failing that,
// HTTP Basic credentials in the Authorization header are verified against
// the store. Requests with neither stay anonymous and flow on to the
// authorization guard.
type Resolver struct {
	Service *Service
	Logger  *slog.Logger
}

// Resolve injects the principal into the request context.
func (rv Resolver) Resolve(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		if sess := shared.SessionFromContext(ctx); sess != nil && sess.Username() != "" {
			principal := authz.NewPrincipal(sess.Username(), sess.Roles())
			next.ServeHTTP(w, r.WithContext(authz.ContextWithPrincipal(ctx, principal)))
			return
		}

		if username, password, ok := r.BasicAuth(); ok {
			principal, err := rv.Service.Authenticate(ctx, username, password)
			if err != nil {
				if rv.Logger != nil {
					rv.Logger.Warn("basic auth rejected", slog.String("path", r.URL.Path))
				}
				next.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r.WithContext(authz.ContextWithPrincipal(ctx, principal)))
			return
		}

		next.ServeHTTP(w, r)
	})
}
