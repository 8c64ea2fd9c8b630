package orchestrators

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	accountStore "preorder/internal/adapters/storage/account"
	"preorder/internal/domain/account"
	"preorder/internal/domain/adminuser"
)

// AccountStoreForSeed defines the account store interface needed by SeedAdmin.
type AccountStoreForSeed interface {
	GetByEmail(ctx context.Context, email string) (account.Account, error)
	Save(ctx context.Context, a account.Account) error
}

// AdminStoreForSeed defines the admin registry interface needed by SeedAdmin.
type AdminStoreForSeed interface {
	Add(ctx context.Context, a adminuser.AdminUser) error
}

// SeedAdminInput carries the configured admin credentials.
type SeedAdminInput struct {
	Email    string
	Password string
}

// SeedAdminDeps holds dependencies for SeedAdmin.
type SeedAdminDeps struct {
	AccountStore AccountStoreForSeed
	AdminStore   AdminStoreForSeed
	GenerateID   func() string
	Now          func() time.Time
}

// ExecuteSeedAdmin makes sure the configured admin account exists and is in
// the admin registry. An existing account keeps its password.
// PRE: none; an empty Email is a no-op
// POST: Account with input.Email exists and has an admin row
func ExecuteSeedAdmin(ctx context.Context, input SeedAdminInput, deps SeedAdminDeps) error {
	email := strings.TrimSpace(input.Email)
	if email == "" {
		return nil
	}
	generateID := deps.GenerateID
	if generateID == nil {
		generateID = uuid.NewString
	}
	now := deps.Now
	if now == nil {
		now = time.Now
	}

	acct, err := deps.AccountStore.GetByEmail(ctx, email)
	switch {
	case err == nil:
		slog.Info("seed_admin", "event", "account_exists", "email", email)
	case errors.Is(err, accountStore.ErrNotFound):
		acct = account.Account{ID: generateID(), Email: email, CreatedAt: now().UTC()}
		if err := acct.Validate(); err != nil {
			return fmt.Errorf("seed admin: %w", err)
		}
		if err := acct.SetPassword(input.Password); err != nil {
			return fmt.Errorf("seed admin: %w", err)
		}
		if err := deps.AccountStore.Save(ctx, acct); err != nil {
			return fmt.Errorf("seed admin: save account: %w", err)
		}
		slog.Info("seed_admin", "event", "account_created", "email", email)
	default:
		return fmt.Errorf("seed admin: lookup: %w", err)
	}

	if err := deps.AdminStore.Add(ctx, adminuser.AdminUser{UserID: acct.ID, CreatedAt: now().UTC()}); err != nil {
		return fmt.Errorf("seed admin: add admin row: %w", err)
	}
	return nil
}
