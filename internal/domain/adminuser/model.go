package adminuser

import (
	"errors"
	"time"
)

// ErrEmptyUserID is returned when an admin row has no user id.
var ErrEmptyUserID = errors.New("user_id is required")

// AdminUser marks an account as allowed to see the admin dashboard.
// Presence of the row is the whole grant; there are no roles or permissions.
type AdminUser struct {
	UserID    string
	CreatedAt time.Time
}

// Validate checks the row before it is stored.
// PRE: none
// POST: Returns ErrEmptyUserID if UserID is blank
func (a AdminUser) Validate() error {
	if a.UserID == "" {
		return ErrEmptyUserID
	}
	return nil
}
