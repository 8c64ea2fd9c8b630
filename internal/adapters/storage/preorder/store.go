package preorder

import (
	"context"
	"time"

	"preorder/internal/adapters/storage"
	domain "preorder/internal/domain/preorder"
)

// Store persists book preorders.
type Store interface {
	// Create inserts a new preorder row.
	// PRE: p has been validated
	// POST: Row is persisted; duplicate emails are accepted
	Create(ctx context.Context, p domain.Preorder) error

	// ListAll returns every preorder, newest first.
	// PRE: none
	// POST: Ordered by created_at descending; empty slice when there are none
	ListAll(ctx context.Context) ([]domain.Preorder, error)

	// Stats aggregates totals relative to now.
	// PRE: none
	// POST: DailySignups <= WeeklySignups <= TotalPreorders
	Stats(ctx context.Context, now time.Time) (domain.Stats, error)
}

// Ensure SQLiteStore implements Store interface.
var _ Store = (*SQLiteStore)(nil)

// SQLDB defines the database interface needed by the store.
type SQLDB interface {
	storage.SQLDB
}
