package authz

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestGuardAllowsPublicPath(t *testing.T) {
	guard := Guard{Table: DefaultTable()}
	req := httptest.NewRequest(http.MethodGet, "/login", nil)
	rec := httptest.NewRecorder()

	guard.Authorize(okHandler()).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
}

func TestGuardRedirectsBrowserToLogin(t *testing.T) {
	guard := Guard{Table: DefaultTable()}
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")
	rec := httptest.NewRecorder()

	guard.Authorize(okHandler()).ServeHTTP(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusSeeOther)
	}
	if loc := rec.Header().Get("Location"); loc != "/login" {
		t.Fatalf("Location = %q, want /login", loc)
	}
}

func TestGuardChallengesBasicClients(t *testing.T) {
	guard := Guard{Table: DefaultTable()}
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Basic bm9ib2R5Ondyb25n")
	rec := httptest.NewRecorder()

	guard.Authorize(okHandler()).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
	if got := rec.Header().Get("WWW-Authenticate"); !strings.HasPrefix(got, "Basic") {
		t.Fatalf("WWW-Authenticate = %q, want Basic challenge", got)
	}
}

func TestGuardDeniesInsufficientRole(t *testing.T) {
	guard := Guard{Table: DefaultTable()}
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Accept", "text/html")
	req = req.WithContext(ContextWithPrincipal(req.Context(), NewPrincipal("user", []string{"ROLE_USER"})))
	rec := httptest.NewRecorder()

	guard.Authorize(okHandler()).ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusForbidden)
	}
}

func TestGuardAllowsSufficientRole(t *testing.T) {
	guard := Guard{Table: DefaultTable()}
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req = req.WithContext(ContextWithPrincipal(req.Context(), NewPrincipal("admin", []string{"ROLE_ADMIN"})))
	rec := httptest.NewRecorder()

	guard.Authorize(okHandler()).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
}
