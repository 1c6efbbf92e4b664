// Package join implements user registration.
package join

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/doma17/SessionSecurity/internal/shared"
	"github.com/doma17/SessionSecurity/internal/users"
)

// Request carries the registration input. It lives only for the duration
// of the call; the plaintext password is never stored.
type Request struct {
	Username string
	Password string
}

// Service validates and stores new registrations.
type Service struct {
	repo        users.Repository
	audit       *shared.AuditLogger
	defaultRole string
	bcryptCost  int
}

// NewService constructs a Service. Every new user receives defaultRole;
// there is no self-service elevation. The bcrypt cost is tunable so tests
// can use the minimum work factor. audit may be nil.
func NewService(repo users.Repository, audit *shared.AuditLogger, defaultRole string, bcryptCost int) *Service {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &Service{repo: repo, audit: audit, defaultRole: defaultRole, bcryptCost: bcryptCost}
}

// Register checks uniqueness, hashes the password and stores the record.
// The early Exists check avoids burning a bcrypt round on a name that is
// already taken; the store's own constraint still catches the race where
// two registrations for the same name interleave.
func (s *Service) Register(ctx context.Context, req Request) (*users.User, error) {
	username := users.NormalizeUsername(req.Username)
	if username == "" {
		return nil, fmt.Errorf("join: %w", errors.New("username required"))
	}

	taken, err := s.repo.Exists(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("join: exists check: %w", err)
	}
	if taken {
		return nil, shared.ErrDuplicateUsername
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("join: hash password: %w", err)
	}

	user, err := s.repo.Create(ctx, username, string(hash), s.defaultRole)
	if err != nil {
		return nil, err
	}

	// The registration is already committed; an audit failure must not
	// undo it.
	_ = s.audit.Record(ctx, shared.AuditLog{
		Actor:  user.Username,
		Action: "user.join",
		Meta:   map[string]any{"role": user.Role},
	})
	return user, nil
}
