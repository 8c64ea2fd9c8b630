package web

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"preorder/internal/adapters/email"
	"preorder/internal/adapters/http/middleware"
	"preorder/internal/adapters/storage"
	accountStore "preorder/internal/adapters/storage/account"
	adminStore "preorder/internal/adapters/storage/adminuser"
	preorderStore "preorder/internal/adapters/storage/preorder"
	accountDomain "preorder/internal/domain/account"
	adminDomain "preorder/internal/domain/adminuser"
	preorderDomain "preorder/internal/domain/preorder"
)

var (
	fixedTime = time.Date(2026, 3, 18, 12, 0, 0, 0, time.UTC)
	errBoom   = errors.New("boom")
)

const testPassword = "correct horse battery"

// testEnv bundles a Server backed by an in-memory database.
type testEnv struct {
	srv       *Server
	accounts  *accountStore.SQLiteStore
	admins    *adminStore.SQLiteStore
	preorders *preorderStore.SQLiteStore
	sender    *email.NoopSender
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	return newTestEnvWith(t, nil)
}

// newTestEnvWith lets a test swap the preorder store, e.g. for a failing one.
func newTestEnvWith(t *testing.T, wrap func(preorderStore.Store) preorderStore.Store) *testEnv {
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
	tdb := storage.NewTimedDB(db, 0)

	env := &testEnv{
		accounts:  accountStore.NewSQLiteStore(tdb),
		admins:    adminStore.NewSQLiteStore(tdb),
		preorders: preorderStore.NewSQLiteStore(tdb),
		sender:    email.NewNoopSender(),
	}
	var ps preorderStore.Store = env.preorders
	if wrap != nil {
		ps = wrap(ps)
	}
	srv, err := NewServer(Stores{
		AccountStore:  env.accounts,
		AdminStore:    env.admins,
		PreorderStore: ps,
	}, Options{
		CSRFKey:       []byte("0123456789abcdef0123456789abcdef"),
		RatePerSecond: 1000,
		Sender:        env.sender,
		Pinger:        tdb,
		Now:           func() time.Time { return fixedTime },
	})
	if err != nil {
		t.Fatalf("NewServer: %v", err)
	}
	env.srv = srv
	return env
}

// addAccount stores an account and optionally registers it as an admin.
func (e *testEnv) addAccount(t *testing.T, id, addr string, admin bool) accountDomain.Account {
	t.Helper()
	ctx := context.Background()
	acct := accountDomain.Account{ID: id, Email: addr, CreatedAt: fixedTime}
	if err := acct.SetPassword(testPassword); err != nil {
		t.Fatalf("SetPassword: %v", err)
	}
	if err := e.accounts.Save(ctx, acct); err != nil {
		t.Fatalf("Save account: %v", err)
	}
	if admin {
		if err := e.admins.Add(ctx, adminDomain.AdminUser{UserID: id, CreatedAt: fixedTime}); err != nil {
			t.Fatalf("Add admin: %v", err)
		}
	}
	return acct
}

func (e *testEnv) addPreorder(t *testing.T, p preorderDomain.Preorder) {
	t.Helper()
	if err := e.preorders.Create(context.Background(), p); err != nil {
		t.Fatalf("Create preorder: %v", err)
	}
}

// serve runs the request against the bare routes, optionally signed in.
func (e *testEnv) serve(req *http.Request, acct *accountDomain.Account) *httptest.ResponseRecorder {
	if acct != nil {
		req = req.WithContext(middleware.ContextWithSession(req.Context(), middleware.Session{
			AccountID: acct.ID,
			Email:     acct.Email,
			CreatedAt: fixedTime,
		}))
	}
	rec := httptest.NewRecorder()
	e.srv.Routes().ServeHTTP(rec, req)
	return rec
}

func postForm(target string, values url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

// failingPreorders returns errBoom from the operations selected.
type failingPreorders struct {
	preorderStore.Store
	create, list, stats bool
}

func (f failingPreorders) Create(ctx context.Context, p preorderDomain.Preorder) error {
	if f.create {
		return errBoom
	}
	return f.Store.Create(ctx, p)
}

func (f failingPreorders) ListAll(ctx context.Context) ([]preorderDomain.Preorder, error) {
	if f.list {
		return nil, errBoom
	}
	return f.Store.ListAll(ctx)
}

func (f failingPreorders) Stats(ctx context.Context, now time.Time) (preorderDomain.Stats, error) {
	if f.stats {
		return preorderDomain.Stats{}, errBoom
	}
	return f.Store.Stats(ctx, now)
}
