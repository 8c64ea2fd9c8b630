package email

import (
	"context"
	"strings"
	"testing"
)

// TestNewConfirmation_IncludesChapters lists chosen chapters, escaped.
// PRE: one chapter contains '&'
// POST: HTML contains the escaped label; recipient and reply-to are set
func TestNewConfirmation_IncludesChapters(t *testing.T) {
	req, err := NewConfirmation(ConfirmationData{
		Email:    " reader@example.com ",
		Chapters: []string{"Chemistry & Connection"},
	}, "author@example.com")
	if err != nil {
		t.Fatalf("NewConfirmation: %v", err)
	}
	if len(req.To) != 1 || req.To[0] != "reader@example.com" {
		t.Errorf("To=%v", req.To)
	}
	if req.ReplyTo != "author@example.com" || req.Subject != ConfirmationSubject {
		t.Errorf("headers wrong: %+v", req)
	}
	if !strings.Contains(req.HTML, "Chemistry &amp; Connection") {
		t.Errorf("chapter not rendered escaped: %s", req.HTML)
	}
	if strings.Contains(req.HTML, "dating tip") {
		t.Error("marketing line should be omitted without consent")
	}
}

// TestNewConfirmation_NoChapters omits the list entirely.
func TestNewConfirmation_NoChapters(t *testing.T) {
	req, err := NewConfirmation(ConfirmationData{Email: "a@b.com", MarketingConsent: true}, "")
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(req.HTML, "<ul>") {
		t.Errorf("unexpected list: %s", req.HTML)
	}
	if !strings.Contains(req.HTML, "dating tip") {
		t.Error("marketing line missing with consent")
	}
}

// TestNoopSender_Records keeps a copy of each request.
func TestNoopSender_Records(t *testing.T) {
	s := NewNoopSender()
	if _, err := s.Send(context.Background(), SendRequest{To: []string{"a@b.com"}, Subject: "hi"}); err != nil {
		t.Fatal(err)
	}
	sent := s.Sent()
	if len(sent) != 1 || sent[0].Subject != "hi" {
		t.Fatalf("Sent()=%+v", sent)
	}
	sent[0].Subject = "mutated"
	if s.Sent()[0].Subject != "hi" {
		t.Error("Sent should return a copy")
	}
}

// TestResendSender_DefaultFrom falls back to the configured address.
func TestResendSender_DefaultFrom(t *testing.T) {
	s := NewResendSender("re_test", "Book <hello@example.com>")
	if got := s.fromFor(SendRequest{}); got != "Book <hello@example.com>" {
		t.Errorf("fromFor=%q", got)
	}
	if got := s.fromFor(SendRequest{From: "other@example.com"}); got != "other@example.com" {
		t.Errorf("fromFor=%q", got)
	}
}
