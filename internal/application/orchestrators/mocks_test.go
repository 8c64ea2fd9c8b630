package orchestrators

import (
	"context"
	"errors"
	"time"

	accountStore "preorder/internal/adapters/storage/account"
	"preorder/internal/domain/account"
	"preorder/internal/domain/adminuser"
	"preorder/internal/domain/preorder"
)

var fixedTime = time.Date(2026, 3, 18, 12, 0, 0, 0, time.UTC)

func fixedNow() time.Time { return fixedTime }

func fixedID() string { return "test-id-001" }

// mockPreorderStore implements PreorderStoreForSubmit for testing.
type mockPreorderStore struct {
	created []preorder.Preorder
	err     error
}

// Create implements PreorderStoreForSubmit.
func (m *mockPreorderStore) Create(_ context.Context, p preorder.Preorder) error {
	if m.err != nil {
		return m.err
	}
	m.created = append(m.created, p)
	return nil
}

// mockAccountStore implements AccountStoreForLogin and AccountStoreForSeed.
type mockAccountStore struct {
	byEmail map[string]account.Account
	getErr  error
	saved   []account.Account
}

func newMockAccountStore(accts ...account.Account) *mockAccountStore {
	m := &mockAccountStore{byEmail: make(map[string]account.Account)}
	for _, a := range accts {
		m.byEmail[a.Email] = a
	}
	return m
}

// GetByEmail implements AccountStoreForLogin.
func (m *mockAccountStore) GetByEmail(_ context.Context, email string) (account.Account, error) {
	if m.getErr != nil {
		return account.Account{}, m.getErr
	}
	a, ok := m.byEmail[email]
	if !ok {
		return account.Account{}, accountStore.ErrNotFound
	}
	return a, nil
}

// Save implements AccountStoreForLogin.
func (m *mockAccountStore) Save(_ context.Context, a account.Account) error {
	m.byEmail[a.Email] = a
	m.saved = append(m.saved, a)
	return nil
}

// mockAdminStore implements AdminStoreForAuthorize and AdminStoreForSeed.
type mockAdminStore struct {
	admins map[string]bool
	err    error
}

func newMockAdminStore(ids ...string) *mockAdminStore {
	m := &mockAdminStore{admins: make(map[string]bool)}
	for _, id := range ids {
		m.admins[id] = true
	}
	return m
}

// Exists implements AdminStoreForAuthorize.
func (m *mockAdminStore) Exists(_ context.Context, userID string) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	return m.admins[userID], nil
}

// Add implements AdminStoreForSeed.
func (m *mockAdminStore) Add(_ context.Context, a adminuser.AdminUser) error {
	if m.err != nil {
		return m.err
	}
	m.admins[a.UserID] = true
	return nil
}

// stubIdentity implements IdentityResolver.
type stubIdentity struct {
	id  Identity
	ok  bool
	err error
}

// CurrentIdentity implements IdentityResolver.
func (s stubIdentity) CurrentIdentity(context.Context) (Identity, bool, error) {
	return s.id, s.ok, s.err
}

var errBoom = errors.New("boom")
