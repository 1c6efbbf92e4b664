package cli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/doma17/SessionSecurity/internal/shared"
	"github.com/doma17/SessionSecurity/internal/users"
)

func TestCreateUser(t *testing.T) {
	repo := users.NewMemoryRepository()
	cli := NewUsersCLI(repo, bcrypt.MinCost)

	user, err := cli.CreateUser(context.Background(), "root", "changeme", "ROLE_ADMIN")
	require.NoError(t, err)
	require.Equal(t, "ROLE_ADMIN", user.Role)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("changeme")))
}

func TestCreateUserRejectsMissingFields(t *testing.T) {
	cli := NewUsersCLI(users.NewMemoryRepository(), bcrypt.MinCost)

	_, err := cli.CreateUser(context.Background(), "", "changeme", "ROLE_ADMIN")
	require.Error(t, err)
	_, err = cli.CreateUser(context.Background(), "root", "", "ROLE_ADMIN")
	require.Error(t, err)
	_, err = cli.CreateUser(context.Background(), "root", "changeme", "")
	require.Error(t, err)
}

func TestCreateUserDuplicate(t *testing.T) {
	repo := users.NewMemoryRepository()
	cli := NewUsersCLI(repo, bcrypt.MinCost)

	_, err := cli.CreateUser(context.Background(), "root", "changeme", "ROLE_ADMIN")
	require.NoError(t, err)
	_, err = cli.CreateUser(context.Background(), "root", "other", "ROLE_USER")
	require.ErrorIs(t, err, shared.ErrDuplicateUsername)
}
