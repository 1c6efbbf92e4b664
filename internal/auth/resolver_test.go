package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/doma17/SessionSecurity/internal/authz"
	"github.com/doma17/SessionSecurity/internal/users"
)

func capturePrincipal(out **authz.Principal) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*out = authz.PrincipalFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})
}

func TestResolveBasicAuth(t *testing.T) {
	repo := users.NewMemoryRepository()
	seedUser(t, repo, "user1", "1234", "ROLE_ADMIN")
	resolver := Resolver{Service: NewService(repo, testHierarchy(t), nil)}

	var got *authz.Principal
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.SetBasicAuth("user1", "1234")
	resolver.Resolve(capturePrincipal(&got)).ServeHTTP(httptest.NewRecorder(), req)

	if got == nil {
		t.Fatal("expected a resolved principal")
	}
	if got.Username != "user1" {
		t.Fatalf("username = %q, want user1", got.Username)
	}
	if _, ok := got.Roles["ROLE_USER"]; !ok {
		t.Fatal("expected hierarchy expansion through basic auth")
	}
}

func TestResolveBasicAuthBadPasswordStaysAnonymous(t *testing.T) {
	repo := users.NewMemoryRepository()
	seedUser(t, repo, "user1", "1234", "ROLE_ADMIN")
	resolver := Resolver{Service: NewService(repo, testHierarchy(t), nil)}

	var got *authz.Principal
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.SetBasicAuth("user1", "wrong")
	rec := httptest.NewRecorder()
	resolver.Resolve(capturePrincipal(&got)).ServeHTTP(rec, req)

	if got != nil {
		t.Fatalf("expected anonymous request, got principal %q", got.Username)
	}
	// The resolver never writes a challenge; that is the guard's job.
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
}

func TestResolveWithoutCredentials(t *testing.T) {
	resolver := Resolver{Service: NewService(users.NewMemoryRepository(), testHierarchy(t), nil)}

	var got *authz.Principal
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	resolver.Resolve(capturePrincipal(&got)).ServeHTTP(httptest.NewRecorder(), req)

	if got != nil {
		t.Fatalf("expected anonymous request, got principal %q", got.Username)
	}
}
