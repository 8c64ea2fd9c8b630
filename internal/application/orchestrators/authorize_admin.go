package orchestrators

import (
	"context"
	"log/slog"
)

// Identity is the signed-in account behind the current request.
type Identity struct {
	AccountID string
	Email     string
}

// IdentityResolver yields the identity of the current session.
// It returns ok=false when there is no session, and an error only when
// the lookup itself failed.
type IdentityResolver interface {
	CurrentIdentity(ctx context.Context) (id Identity, ok bool, err error)
}

// AdminStoreForAuthorize defines the store interface needed by AuthorizeAdmin.
type AdminStoreForAuthorize interface {
	Exists(ctx context.Context, userID string) (bool, error)
}

// UnauthorizedReason says why access was refused.
type UnauthorizedReason string

// Unauthorized reasons
const (
	ReasonNoSession    UnauthorizedReason = "no_session"
	ReasonNotAdmin     UnauthorizedReason = "not_admin"
	ReasonLookupFailed UnauthorizedReason = "lookup_failed"
)

// Authorization is the result of the admin check: either Authorized or Unauthorized.
type Authorization interface {
	authorization()
}

// Authorized carries the identity that passed the check.
type Authorized struct {
	Identity Identity
}

// Unauthorized carries the reason access was refused.
type Unauthorized struct {
	Reason UnauthorizedReason
}

func (Authorized) authorization()   {}
func (Unauthorized) authorization() {}

// AuthorizeAdminDeps holds dependencies for AuthorizeAdmin.
type AuthorizeAdminDeps struct {
	Identity   IdentityResolver
	AdminStore AdminStoreForAuthorize
}

// ExecuteAuthorizeAdmin decides whether the current session may open the admin dashboard.
// PRE: none
// POST: Returns Authorized only when a session exists and its account has an
// admin row. Every error path returns Unauthorized.
func ExecuteAuthorizeAdmin(ctx context.Context, deps AuthorizeAdminDeps) Authorization {
	id, ok, err := deps.Identity.CurrentIdentity(ctx)
	if err != nil {
		slog.Error("admin_check", "result", ReasonLookupFailed, "stage", "identity", "error", err)
		return Unauthorized{Reason: ReasonLookupFailed}
	}
	if !ok || id.AccountID == "" {
		return Unauthorized{Reason: ReasonNoSession}
	}

	isAdmin, err := deps.AdminStore.Exists(ctx, id.AccountID)
	if err != nil {
		slog.Error("admin_check", "result", ReasonLookupFailed, "stage", "admin_users", "account_id", id.AccountID, "error", err)
		return Unauthorized{Reason: ReasonLookupFailed}
	}
	if !isAdmin {
		slog.Info("admin_check", "result", ReasonNotAdmin, "account_id", id.AccountID)
		return Unauthorized{Reason: ReasonNotAdmin}
	}
	return Authorized{Identity: id}
}
