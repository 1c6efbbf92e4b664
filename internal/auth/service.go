// Package auth resolves credentials into principals and manages the
// login/logout lifecycle.
package auth

import (
	"context"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/doma17/SessionSecurity/internal/authz"
	"github.com/doma17/SessionSecurity/internal/shared"
	"github.com/doma17/SessionSecurity/internal/users"
)

// Service wraps authentication business rules.
type Service struct {
	repo      users.Repository
	hierarchy *authz.Hierarchy
	sessions  SessionRepository
}

// NewService constructs a new Service. The session repository may be nil
// when login auditing is not wired.
func NewService(repo users.Repository, hierarchy *authz.Hierarchy, sessions SessionRepository) *Service {
	return &Service{repo: repo, hierarchy: hierarchy, sessions: sessions}
}

// Authenticate validates username/password credentials and returns the
// principal with the role set expanded through the hierarchy. Unknown
// usernames and wrong passwords are indistinguishable to the caller.
func (s *Service) Authenticate(ctx context.Context, username, password string) (*authz.Principal, error) {
	username = users.NormalizeUsername(username)
	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		return nil, shared.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, shared.ErrInvalidCredentials
	}
	return authz.NewPrincipal(user.Username, s.hierarchy.Expand(user.Role)), nil
}

// RegisterSession records login session metadata for auditing.
func (s *Service) RegisterSession(ctx context.Context, id, username string, expiresAt time.Time, ip, ua string) error {
	if s.sessions == nil {
		return nil
	}
	return s.sessions.CreateSession(ctx, id, username, expiresAt, ip, ua)
}

// RemoveSession deletes an audit session record.
func (s *Service) RemoveSession(ctx context.Context, id string) error {
	if s.sessions == nil {
		return nil
	}
	return s.sessions.DeleteSession(ctx, id)
}
