package auth

import (
	"context"
)

// UsersRepo defines the interface for user repository operations
type UsersRepo interface {
	// Create inserts the user; a username collision yields ErrDuplicateUsername.
	Create(ctx context.Context, user *User) error
	// FindByUsername does an exact-match lookup. Absence is reported as an
	// error distinct from infrastructure failures only by the caller's choice
	// to treat both as invalid credentials.
	FindByUsername(ctx context.Context, username string) (*User, error)
}
