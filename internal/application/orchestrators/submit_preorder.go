package orchestrators

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"preorder/internal/adapters/email"
	"preorder/internal/domain/notice"
	"preorder/internal/domain/preorder"
)

// ErrInvalidPreorder wraps every validation failure from ExecuteSubmitPreorder.
var ErrInvalidPreorder = errors.New("invalid preorder")

const confirmationTimeout = 10 * time.Second

// PreorderStoreForSubmit defines the store interface needed by SubmitPreorder.
type PreorderStoreForSubmit interface {
	Create(ctx context.Context, p preorder.Preorder) error
}

// SubmitPreorderCommand carries the submitted form values.
type SubmitPreorderCommand struct {
	Email              string
	InterestedChapters []string
	MarketingConsent   bool
}

// SubmitPreorderResult is the outcome of a submission. Notice is always set.
type SubmitPreorderResult struct {
	Preorder preorder.Preorder
	Notice   notice.Notice
}

// Succeeded reports whether the preorder was stored.
func (r SubmitPreorderResult) Succeeded() bool {
	return r.Preorder.ID != ""
}

// SubmitPreorderDeps holds dependencies for SubmitPreorder.
// Sender is optional; nil skips the confirmation email.
type SubmitPreorderDeps struct {
	PreorderStore PreorderStoreForSubmit
	Sender        email.Sender
	ReplyTo       string
	GenerateID    func() string
	Now           func() time.Time
}

// ExecuteSubmitPreorder validates the form values and records one preorder.
// PRE: cmd holds the raw form values
// POST: On success exactly one row is inserted and the result carries the
// stored record with the success notice. On failure nothing is stored when
// validation fails, and the result carries a destructive notice.
func ExecuteSubmitPreorder(ctx context.Context, cmd SubmitPreorderCommand, deps SubmitPreorderDeps) (SubmitPreorderResult, error) {
	generateID := deps.GenerateID
	if generateID == nil {
		generateID = uuid.NewString
	}
	now := deps.Now
	if now == nil {
		now = time.Now
	}

	chapters := cmd.InterestedChapters
	if chapters == nil {
		chapters = []string{}
	}
	p := preorder.Preorder{
		ID:                 generateID(),
		Email:              strings.TrimSpace(cmd.Email),
		InterestedChapters: chapters,
		MarketingConsent:   cmd.MarketingConsent,
		CreatedAt:          now().UTC(),
	}

	if err := p.Validate(); err != nil {
		slog.Info("preorder_rejected", "reason", err.Error())
		return SubmitPreorderResult{Notice: notice.Invalid(validationMessage(err))},
			fmt.Errorf("%w: %w", ErrInvalidPreorder, err)
	}

	if err := deps.PreorderStore.Create(ctx, p); err != nil {
		slog.Error("preorder_save_failed", "error", err)
		return SubmitPreorderResult{Notice: notice.PreorderFailed}, fmt.Errorf("save preorder: %w", err)
	}

	slog.Info("preorder_submitted", "preorder_id", p.ID, "chapters", len(p.InterestedChapters), "marketing_consent", p.MarketingConsent)

	if deps.Sender != nil {
		sendConfirmation(ctx, p, deps)
	}

	return SubmitPreorderResult{Preorder: p, Notice: notice.PreorderSaved}, nil
}

// sendConfirmation emails the new subscriber. Failures are logged only.
func sendConfirmation(ctx context.Context, p preorder.Preorder, deps SubmitPreorderDeps) {
	req, err := email.NewConfirmation(email.ConfirmationData{
		Email:            p.Email,
		Chapters:         p.InterestedChapters,
		MarketingConsent: p.MarketingConsent,
	}, deps.ReplyTo)
	if err != nil {
		slog.Error("preorder_confirmation_failed", "preorder_id", p.ID, "error", err)
		return
	}

	sendCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), confirmationTimeout)
	defer cancel()
	if _, err := deps.Sender.Send(sendCtx, req); err != nil {
		slog.Error("preorder_confirmation_failed", "preorder_id", p.ID, "error", err)
	}
}

func validationMessage(err error) string {
	switch {
	case errors.Is(err, preorder.ErrEmptyEmail):
		return "Please enter your email address."
	case errors.Is(err, preorder.ErrInvalidEmail):
		return "Please enter a valid email address."
	case errors.Is(err, preorder.ErrEmailTooLong):
		return "That email address is too long."
	case errors.Is(err, preorder.ErrUnknownChapter):
		return "Please pick chapters from the list."
	default:
		return "Please try again."
	}
}
