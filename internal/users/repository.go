package users

import "context"

// Repository is the credential store port. The store owns the username
// uniqueness invariant: Create must reject duplicates itself rather than
// trusting an earlier Exists check, because two concurrent registrations
// can race between the check and the insert.
type Repository interface {
	Exists(ctx context.Context, username string) (bool, error)
	FindByUsername(ctx context.Context, username string) (*User, error)
	Create(ctx context.Context, username, passwordHash, role string) (*User, error)
}
