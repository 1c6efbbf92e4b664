package app

import (
	"io/fs"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/doma17/SessionSecurity/internal/auth"
	"github.com/doma17/SessionSecurity/internal/authz"
	"github.com/doma17/SessionSecurity/internal/join"
	"github.com/doma17/SessionSecurity/internal/observability"
	"github.com/doma17/SessionSecurity/internal/shared"
	"github.com/doma17/SessionSecurity/internal/view"
	"github.com/doma17/SessionSecurity/web"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger         *slog.Logger
	Config         *Config
	Templates      *view.Engine
	SessionManager *shared.SessionManager
	CSRFManager    *shared.CSRFManager
	AuthHandler    *auth.Handler
	JoinHandler    *join.Handler
	Resolver       auth.Resolver
	Guard          authz.Guard
	Metrics        *observability.Metrics
}

// NewRouter constructs the chi.Router. Every route passes the principal
// resolver and then the authorization guard; which paths are reachable
// anonymously is decided solely by the guard's rule table.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:         params.Logger,
		Config:         params.Config,
		SessionManager: params.SessionManager,
		CSRFManager:    params.CSRFManager,
		Metrics:        params.Metrics,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)
	r.Use(params.Resolver.Resolve)
	r.Use(params.Guard.Authorize)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		renderPage(w, r, params, "pages/home.html", "Main")
	})

	r.Get("/admin", func(w http.ResponseWriter, r *http.Request) {
		renderPage(w, r, params, "pages/admin.html", "Admin")
	})

	r.Get("/my/*", func(w http.ResponseWriter, r *http.Request) {
		renderPage(w, r, params, "pages/my.html", "My Page")
	})

	params.AuthHandler.MountRoutes(r)
	params.JoinHandler.MountRoutes(r)

	if params.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}

	staticFS, err := fs.Sub(web.Static, "static")
	if err != nil {
		params.Logger.Error("create static sub filesystem", slog.Any("error", err))
	} else {
		fileServer := http.StripPrefix("/static/", http.FileServer(http.FS(staticFS)))
		r.Handle("/static/*", staticCacheHandler(fileServer))
	}

	return r
}

type pageData struct {
	Username string
	Roles    []string
}

func renderPage(w http.ResponseWriter, r *http.Request, params RouterParams, template, title string) {
	sess := shared.SessionFromContext(r.Context())
	csrfToken, _ := params.CSRFManager.EnsureToken(r.Context(), sess)
	var flash *shared.FlashMessage
	if sess != nil {
		flash = sess.PopFlash()
	}
	data := pageData{}
	if principal := authz.PrincipalFromContext(r.Context()); principal != nil {
		data.Username = principal.Username
		data.Roles = principal.RoleList()
	}
	viewData := view.TemplateData{
		Title:       title,
		CSRFToken:   csrfToken,
		Flash:       flash,
		CurrentPath: r.URL.Path,
		Data:        data,
	}
	if err := params.Templates.Render(w, template, viewData); err != nil {
		params.Logger.Error("render page", slog.String("template", template), slog.Any("error", err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

// staticCacheHandler wraps a file server with Cache-Control headers.
func staticCacheHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "public, max-age=3600")
		next.ServeHTTP(w, r)
	})
}
