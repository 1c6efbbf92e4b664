// Package cli offers operational helpers invoked from the command line.
package cli

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/doma17/SessionSecurity/internal/users"
)

// UsersCLI creates accounts outside the join flow, typically the first
// admin. It goes through the same credential store contract as the web
// registration, so uniqueness still holds.
type UsersCLI struct {
	repo users.Repository
	cost int
}

// NewUsersCLI constructs the helper.
func NewUsersCLI(repo users.Repository, bcryptCost int) *UsersCLI {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &UsersCLI{repo: repo, cost: bcryptCost}
}

// CreateUser registers an account with an explicit role.
func (c *UsersCLI) CreateUser(ctx context.Context, username, password, role string) (*users.User, error) {
	username = users.NormalizeUsername(username)
	if username == "" || password == "" || role == "" {
		return nil, errors.New("cli: username, password and role are required")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), c.cost)
	if err != nil {
		return nil, fmt.Errorf("cli: hash password: %w", err)
	}
	return c.repo.Create(ctx, username, string(hash), role)
}
