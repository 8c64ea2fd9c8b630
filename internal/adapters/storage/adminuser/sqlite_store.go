package adminuser

import (
	"context"

	"preorder/internal/adapters/storage"
	domain "preorder/internal/domain/adminuser"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new admin registry store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// Exists reports whether userID is registered as an admin.
func (s *SQLiteStore) Exists(ctx context.Context, userID string) (bool, error) {
	if userID == "" {
		return false, nil
	}
	var found int
	err := s.db.QueryRowContext(ctx,
		"SELECT EXISTS(SELECT 1 FROM admin_users WHERE user_id = ?)", userID,
	).Scan(&found)
	if err != nil {
		return false, err
	}
	return found == 1, nil
}

// Add registers an account as an admin.
// PRE: a.UserID references an existing account
// POST: Row exists; the original created_at is kept on repeat calls
func (s *SQLiteStore) Add(ctx context.Context, a domain.AdminUser) error {
	if err := a.Validate(); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO admin_users (user_id, created_at) VALUES (?, ?)
		 ON CONFLICT(user_id) DO NOTHING`,
		a.UserID, storage.FormatTime(a.CreatedAt))
	return err
}
