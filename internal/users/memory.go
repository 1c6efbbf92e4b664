package users

import (
	"context"
	"sync"
	"time"

	"github.com/doma17/SessionSecurity/internal/shared"
)

// MemoryRepository keeps credential records in a mutex-guarded map. Useful
// for small fixed user sets and for tests; it honours the same uniqueness
// contract as the PostgreSQL store.
type MemoryRepository struct {
	mu     sync.Mutex
	nextID int64
	byName map[string]*User
}

// NewMemoryRepository constructs an empty in-memory store.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{byName: make(map[string]*User)}
}

// Seed inserts a record directly, overwriting any previous entry with the
// same username. Intended for startup fixtures only.
func (r *MemoryRepository) Seed(username, passwordHash, role string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	r.byName[username] = &User{
		ID:           r.nextID,
		Username:     username,
		PasswordHash: passwordHash,
		Role:         role,
		CreatedAt:    time.Now().UTC(),
	}
}

// Exists reports whether a username is taken.
func (r *MemoryRepository) Exists(ctx context.Context, username string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.byName[username]
	return ok, nil
}

// FindByUsername fetches a credential record.
func (r *MemoryRepository) FindByUsername(ctx context.Context, username string) (*User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.byName[username]
	if !ok {
		return nil, shared.ErrNotFound
	}
	copied := *user
	return &copied, nil
}

// Create inserts a new record; duplicates are rejected under the same lock
// that publishes the record, so concurrent registrations cannot both win.
func (r *MemoryRepository) Create(ctx context.Context, username, passwordHash, role string) (*User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byName[username]; ok {
		return nil, shared.ErrDuplicateUsername
	}
	r.nextID++
	user := &User{
		ID:           r.nextID,
		Username:     username,
		PasswordHash: passwordHash,
		Role:         role,
		CreatedAt:    time.Now().UTC(),
	}
	r.byName[username] = user
	copied := *user
	return &copied, nil
}

var _ Repository = (*MemoryRepository)(nil)
