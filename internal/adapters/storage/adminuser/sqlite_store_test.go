package adminuser_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"preorder/internal/adapters/storage"
	store "preorder/internal/adapters/storage/adminuser"
	domain "preorder/internal/domain/adminuser"
)

func newTestDB(t *testing.T) *sql.DB {
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
	return db
}

func insertAccount(t *testing.T, db *sql.DB, id string) {
	t.Helper()
	_, err := db.Exec("INSERT INTO account (id, email, created_at) VALUES (?, ?, ?)",
		id, id+"@example.com", "2026-01-01T00:00:00Z")
	if err != nil {
		t.Fatalf("insert account: %v", err)
	}
}

// TestExists_AddThenCheck verifies registry membership.
// PRE: two accounts, only one added as admin
// POST: Exists is true for the admin and false for the other
func TestExists_AddThenCheck(t *testing.T) {
	db := newTestDB(t)
	insertAccount(t, db, "admin-1")
	insertAccount(t, db, "reader-1")
	s := store.NewSQLiteStore(db)
	ctx := context.Background()

	if err := s.Add(ctx, domain.AdminUser{UserID: "admin-1", CreatedAt: time.Now()}); err != nil {
		t.Fatalf("Add: %v", err)
	}

	for id, want := range map[string]bool{"admin-1": true, "reader-1": false, "": false, "ghost": false} {
		got, err := s.Exists(ctx, id)
		if err != nil {
			t.Fatalf("Exists(%q): %v", id, err)
		}
		if got != want {
			t.Errorf("Exists(%q)=%v want %v", id, got, want)
		}
	}
}

// TestAdd_Idempotent allows re-adding the same admin.
func TestAdd_Idempotent(t *testing.T) {
	db := newTestDB(t)
	insertAccount(t, db, "admin-1")
	s := store.NewSQLiteStore(db)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if err := s.Add(ctx, domain.AdminUser{UserID: "admin-1", CreatedAt: time.Now()}); err != nil {
			t.Fatalf("Add #%d: %v", i+1, err)
		}
	}
	var n int
	if err := db.QueryRow("SELECT COUNT(*) FROM admin_users").Scan(&n); err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Errorf("rows=%d want 1", n)
	}
}

// TestAdd_EmptyUserID is rejected before touching the database.
func TestAdd_EmptyUserID(t *testing.T) {
	s := store.NewSQLiteStore(newTestDB(t))
	err := s.Add(context.Background(), domain.AdminUser{})
	if !errors.Is(err, domain.ErrEmptyUserID) {
		t.Fatalf("err=%v want ErrEmptyUserID", err)
	}
}

// TestAdminRowRemovedWithAccount checks the cascade from account deletion.
func TestAdminRowRemovedWithAccount(t *testing.T) {
	db := newTestDB(t)
	insertAccount(t, db, "admin-1")
	s := store.NewSQLiteStore(db)
	ctx := context.Background()
	if err := s.Add(ctx, domain.AdminUser{UserID: "admin-1", CreatedAt: time.Now()}); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if _, err := db.Exec("DELETE FROM account WHERE id = ?", "admin-1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	ok, err := s.Exists(ctx, "admin-1")
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Error("admin row should be removed with its account")
	}
}
