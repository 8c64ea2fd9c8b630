package orchestrators

import (
	"context"
	"testing"
)

// TestExecuteAuthorizeAdmin covers every branch of the admin check.
// PRE: identity and admin registry vary per case
// POST: Authorized only for a signed-in account with an admin row
func TestExecuteAuthorizeAdmin(t *testing.T) {
	admin := Identity{AccountID: "acct-admin", Email: "admin@example.com"}
	reader := Identity{AccountID: "acct-reader", Email: "reader@example.com"}

	tests := []struct {
		name     string
		identity stubIdentity
		admins   *mockAdminStore
		want     Authorization
	}{
		{"no session", stubIdentity{}, newMockAdminStore("acct-admin"), Unauthorized{Reason: ReasonNoSession}},
		{"session without account id", stubIdentity{ok: true}, newMockAdminStore(""), Unauthorized{Reason: ReasonNoSession}},
		{"identity lookup error", stubIdentity{err: errBoom}, newMockAdminStore("acct-admin"), Unauthorized{Reason: ReasonLookupFailed}},
		{"not an admin", stubIdentity{id: reader, ok: true}, newMockAdminStore("acct-admin"), Unauthorized{Reason: ReasonNotAdmin}},
		{"admin lookup error", stubIdentity{id: admin, ok: true}, &mockAdminStore{err: errBoom}, Unauthorized{Reason: ReasonLookupFailed}},
		{"admin", stubIdentity{id: admin, ok: true}, newMockAdminStore("acct-admin"), Authorized{Identity: admin}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExecuteAuthorizeAdmin(context.Background(), AuthorizeAdminDeps{
				Identity:   tt.identity,
				AdminStore: tt.admins,
			})
			if got != tt.want {
				t.Errorf("got %#v want %#v", got, tt.want)
			}
		})
	}
}
