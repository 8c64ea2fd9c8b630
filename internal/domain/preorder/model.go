package preorder

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// MaxEmailLength is the longest email address accepted on the form.
const MaxEmailLength = 254

// Domain errors
var (
	ErrEmptyEmail     = errors.New("email cannot be empty")
	ErrInvalidEmail   = errors.New("email must be a valid address")
	ErrEmailTooLong   = errors.New("email cannot exceed 254 characters")
	ErrUnknownChapter = errors.New("chapter is not in the chapter list")
	ErrEmptyID        = errors.New("id is required")
	ErrMissingCreated = errors.New("created_at must be set")
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Preorder is one recorded expression of interest in the book.
// Created once on submission and never mutated afterwards.
type Preorder struct {
	ID                 string    `json:"id"`
	Email              string    `json:"email"`
	InterestedChapters []string  `json:"interested_chapters"`
	MarketingConsent   bool      `json:"marketing_consent"`
	CreatedAt          time.Time `json:"created_at"`
}

// Stats is a point-in-time aggregate of preorders computed by the store.
type Stats struct {
	TotalPreorders int `json:"total_preorders"`
	DailySignups   int `json:"daily_signups"`
	WeeklySignups  int `json:"weekly_signups"`
}

// Validate checks the preorder before it is written.
// PRE: Preorder fields may be empty
// POST: Returns nil if the record can be stored, a domain error otherwise
func (p *Preorder) Validate() error {
	if p.ID == "" {
		return ErrEmptyID
	}
	if p.CreatedAt.IsZero() {
		return ErrMissingCreated
	}
	if err := ValidateEmail(p.Email); err != nil {
		return err
	}
	for _, c := range p.InterestedChapters {
		if !IsChapter(c) {
			return fmt.Errorf("%w: %q", ErrUnknownChapter, c)
		}
	}
	return nil
}

// ValidateEmail applies the same rules the browser applies to an
// <input type="email" required> field.
func ValidateEmail(email string) error {
	if strings.TrimSpace(email) == "" {
		return ErrEmptyEmail
	}
	if len(email) > MaxEmailLength {
		return ErrEmailTooLong
	}
	if err := validate.Var(email, "email"); err != nil {
		return ErrInvalidEmail
	}
	return nil
}

// JoinedChapters returns the chapter labels separated by "; ".
func (p Preorder) JoinedChapters() string {
	return strings.Join(p.InterestedChapters, "; ")
}

// ConsentLabel renders MarketingConsent as "Yes" or "No".
func (p Preorder) ConsentLabel() string {
	if p.MarketingConsent {
		return "Yes"
	}
	return "No"
}

// WeekStart returns Monday 00:00 UTC of the ISO week containing t.
func WeekStart(t time.Time) time.Time {
	day := DayStart(t)
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}

// DayStart returns 00:00 UTC of the day containing t.
func DayStart(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
