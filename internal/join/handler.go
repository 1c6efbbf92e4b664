package join

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/doma17/SessionSecurity/internal/shared"
	"github.com/doma17/SessionSecurity/internal/view"
)

// Handler wires the join page and its form endpoint.
type Handler struct {
	logger      *slog.Logger
	service     *Service
	templates   *view.Engine
	csrfManager *shared.CSRFManager
	validator   *validator.Validate
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, service *Service, templates *view.Engine, csrf *shared.CSRFManager) *Handler {
	return &Handler{
		logger:      logger,
		service:     service,
		templates:   templates,
		csrfManager: csrf,
		validator:   validator.New(),
	}
}

// MountRoutes registers join routes on the provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/join", h.showJoin)
	r.With(shared.CredentialRateLimit()).Post("/joinProc", h.handleJoin)
}

type joinForm struct {
	Username string `validate:"required,min=2,max=64"`
	Password string `validate:"required,min=4"`
}

type joinPageData struct {
	Form   joinForm
	Errors map[string]string
}

func (h *Handler) showJoin(w http.ResponseWriter, r *http.Request) {
	h.renderJoin(w, r, joinPageData{}, http.StatusOK)
}

func (h *Handler) handleJoin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	form := joinForm{
		Username: r.PostFormValue("username"),
		Password: r.PostFormValue("password"),
	}
	formErrors := make(map[string]string)
	if err := h.validator.Struct(form); err != nil {
		for _, fieldErr := range err.(validator.ValidationErrors) {
			formErrors[fieldErr.Field()] = fieldErr.Error()
		}
	}

	if len(formErrors) > 0 {
		form.Password = ""
		h.renderJoin(w, r, joinPageData{Form: form, Errors: formErrors}, http.StatusBadRequest)
		return
	}

	_, err := h.service.Register(r.Context(), Request{Username: form.Username, Password: form.Password})
	if err != nil && !errors.Is(err, shared.ErrDuplicateUsername) {
		h.logger.Error("register user", slog.Any("error", err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	if err != nil {
		h.logger.Info("join rejected, username taken", slog.String("username", form.Username))
	}

	// Success and duplicate both land on the login page. The caller is not
	// told which happened.
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func (h *Handler) renderJoin(w http.ResponseWriter, r *http.Request, data joinPageData, status int) {
	sess := shared.SessionFromContext(r.Context())
	csrfToken, _ := h.csrfManager.EnsureToken(r.Context(), sess)
	var flash *shared.FlashMessage
	if sess != nil {
		flash = sess.PopFlash()
	}
	viewData := view.TemplateData{
		Title:       "Join",
		CSRFToken:   csrfToken,
		Flash:       flash,
		CurrentPath: r.URL.Path,
		Data:        data,
	}
	if status != http.StatusOK {
		w.WriteHeader(status)
	}
	if err := h.templates.Render(w, "pages/join.html", viewData); err != nil {
		h.logger.Error("render join", slog.Any("error", err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

// ShowJoinForTest exposes the GET handler for tests.
func (h *Handler) ShowJoinForTest(w http.ResponseWriter, r *http.Request) {
	h.showJoin(w, r)
}

// HandleJoinForTest exposes the POST handler for tests.
func (h *Handler) HandleJoinForTest(w http.ResponseWriter, r *http.Request) {
	h.handleJoin(w, r)
}
