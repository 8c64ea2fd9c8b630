package preorder

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"preorder/internal/adapters/storage"
	domain "preorder/internal/domain/preorder"
)

const selectColumns = "SELECT id, email, interested_chapters, marketing_consent, created_at FROM book_preorders"

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new preorder store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// Create inserts a new preorder row.
// PRE: p has been validated
// POST: Row is persisted
func (s *SQLiteStore) Create(ctx context.Context, p domain.Preorder) error {
	chapters := p.InterestedChapters
	if chapters == nil {
		chapters = []string{}
	}
	encoded, err := json.Marshal(chapters)
	if err != nil {
		return fmt.Errorf("encode chapters: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO book_preorders (id, email, interested_chapters, marketing_consent, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		p.ID, p.Email, string(encoded), p.MarketingConsent, storage.FormatTime(p.CreatedAt))
	return err
}

// ListAll returns every preorder, newest first.
// PRE: none
// POST: Returns a non-nil slice ordered by created_at descending
func (s *SQLiteStore) ListAll(ctx context.Context) ([]domain.Preorder, error) {
	rows, err := s.db.QueryContext(ctx, selectColumns+" ORDER BY created_at DESC, id DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	results := []domain.Preorder{}
	for rows.Next() {
		p, err := scanPreorder(rows.Scan)
		if err != nil {
			return nil, err
		}
		results = append(results, p)
	}
	return results, rows.Err()
}

// Stats counts all preorders, those since 00:00 UTC today, and those since
// Monday 00:00 UTC of the current week.
// PRE: none
// POST: Counts are taken in a single statement so they are mutually consistent
func (s *SQLiteStore) Stats(ctx context.Context, now time.Time) (domain.Stats, error) {
	dayStart := storage.FormatTime(domain.DayStart(now))
	weekStart := storage.FormatTime(domain.WeekStart(now))

	var stats domain.Stats
	err := s.db.QueryRowContext(ctx,
		`SELECT
			COUNT(*),
			COALESCE(SUM(CASE WHEN created_at >= ? THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN created_at >= ? THEN 1 ELSE 0 END), 0)
		 FROM book_preorders`,
		dayStart, weekStart,
	).Scan(&stats.TotalPreorders, &stats.DailySignups, &stats.WeeklySignups)
	if err != nil {
		return domain.Stats{}, err
	}
	return stats, nil
}

// scanPreorder extracts a Preorder from a row scanner function.
func scanPreorder(scan func(dest ...any) error) (domain.Preorder, error) {
	var p domain.Preorder
	var chapters, createdAt string
	var consent sql.NullBool
	if err := scan(&p.ID, &p.Email, &chapters, &consent, &createdAt); err != nil {
		return domain.Preorder{}, err
	}
	p.MarketingConsent = consent.Valid && consent.Bool

	p.InterestedChapters = []string{}
	if chapters != "" {
		if err := json.Unmarshal([]byte(chapters), &p.InterestedChapters); err != nil {
			return domain.Preorder{}, fmt.Errorf("decode chapters for %s: %w", p.ID, err)
		}
	}

	var err error
	p.CreatedAt, err = storage.ParseTime(createdAt)
	if err != nil {
		return domain.Preorder{}, err
	}
	return p, nil
}
