package adminuser

import (
	"context"

	domain "preorder/internal/domain/adminuser"
)

// Store is the admin registry: an account is an admin exactly when a row
// with its id exists.
type Store interface {
	// Exists reports whether userID is registered as an admin.
	// PRE: none
	// POST: Returns false with nil error when no row matches
	Exists(ctx context.Context, userID string) (bool, error)

	// Add registers an account as an admin. Adding an existing admin is a no-op.
	// PRE: a.UserID references an existing account
	// POST: Exists(a.UserID) is true
	Add(ctx context.Context, a domain.AdminUser) error
}

// Ensure SQLiteStore implements Store interface.
var _ Store = (*SQLiteStore)(nil)
