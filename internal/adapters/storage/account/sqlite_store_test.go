package account_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"preorder/internal/adapters/storage"
	store "preorder/internal/adapters/storage/account"
	domain "preorder/internal/domain/account"
)

func newTestStore(t *testing.T) *store.SQLiteStore {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	if err := storage.InitDB(db); err != nil {
		t.Fatalf("InitDB: %v", err)
	}
	return store.NewSQLiteStore(db)
}

// TestSaveAndGet verifies insert, lookup by id and by email.
// PRE: empty store
// POST: Saved account is returned by both lookups; Count is 1
func TestSaveAndGet(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	acct := domain.Account{
		ID:           "acct-1",
		Email:        "Author@Example.com",
		PasswordHash: "hash",
		CreatedAt:    time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}
	if err := s.Save(ctx, acct); err != nil {
		t.Fatalf("Save: %v", err)
	}

	byID, err := s.GetByID(ctx, "acct-1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if byID.Email != acct.Email || !byID.CreatedAt.Equal(acct.CreatedAt) {
		t.Errorf("GetByID = %+v", byID)
	}

	byEmail, err := s.GetByEmail(ctx, "author@example.com")
	if err != nil {
		t.Fatalf("GetByEmail: %v", err)
	}
	if byEmail.ID != "acct-1" {
		t.Errorf("GetByEmail id=%q", byEmail.ID)
	}
}

// TestSave_UpdatesLockout persists failed logins and lock expiry.
func TestSave_UpdatesLockout(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	acct := domain.Account{ID: "acct-1", Email: "a@example.com", CreatedAt: now}
	if err := s.Save(ctx, acct); err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 5; i++ {
		acct.RecordFailedLogin(now)
	}
	if err := s.Save(ctx, acct); err != nil {
		t.Fatal(err)
	}

	got, err := s.GetByID(ctx, "acct-1")
	if err != nil {
		t.Fatal(err)
	}
	if got.FailedLogins != 5 || !got.IsLocked(now) {
		t.Errorf("lockout not persisted: %+v", got)
	}

	got.ResetFailedLogins()
	if err := s.Save(ctx, got); err != nil {
		t.Fatal(err)
	}
	got, _ = s.GetByID(ctx, "acct-1")
	if got.FailedLogins != 0 || !got.LockedUntil.IsZero() {
		t.Errorf("reset not persisted: %+v", got)
	}
}

// TestGet_NotFound wraps ErrNotFound.
func TestGet_NotFound(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	if _, err := s.GetByID(ctx, "missing"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("GetByID err=%v want ErrNotFound", err)
	}
	if _, err := s.GetByEmail(ctx, "missing@example.com"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("GetByEmail err=%v want ErrNotFound", err)
	}
}
