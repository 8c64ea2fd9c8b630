package web

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"preorder/internal/application/orchestrators"
	"preorder/internal/domain/notice"
	"preorder/internal/domain/preorder"
)

// testimonial is an early-reader quote on the landing page.
type testimonial struct {
	Quote    string
	Author   string
	Role     string
	Company  string
	Initials string
}

var testimonials = []testimonial{
	{
		Quote:    "Investor meetings feel completely different after this. It's like switching from blind dates to a tailored match.",
		Author:   "Sarah Chen",
		Role:     "Series A Founder",
		Company:  "TechFlow",
		Initials: "SC",
	},
	{
		Quote:    "The honesty in these pages is refreshing, and the tactics deliver.",
		Author:   "Marcus Rivera",
		Role:     "Partner",
		Company:  "Venture Labs",
		Initials: "MR",
	},
	{
		Quote:    "This reframes fundraising in a way I've never seen before. Once you see the parallels, you can't unsee them.",
		Author:   "Jennifer Walsh",
		Role:     "Serial Entrepreneur",
		Company:  "TechCorp",
		Initials: "JW",
	},
}

// chapterOption is one checkbox on the preorder form.
type chapterOption struct {
	ID      string
	Label   string
	Checked bool
}

type landingPage struct {
	basePage
	Form         preorder.Form
	Options      []chapterOption
	Previews     []preorder.ChapterPreview
	Testimonials []testimonial
	Notice       notice.Notice
	// ChapterOrder is the newline-joined toggle order, echoed back into the form.
	ChapterOrder string
	// BusyLabel is what the page script shows on the button while a post is in flight.
	BusyLabel string
}

func (s *Server) landingData(r *http.Request, form preorder.Form, n notice.Notice) landingPage {
	opts := make([]chapterOption, len(preorder.Chapters))
	for i, label := range preorder.Chapters {
		opts[i] = chapterOption{ID: chapterInputID(i), Label: label, Checked: form.IsChecked(label)}
	}
	busy := form
	busy.BeginSubmit()
	return landingPage{
		basePage:     newBasePage(r, "VC Dating Secrets"),
		Form:         form,
		Options:      opts,
		Previews:     preorder.Previews,
		Testimonials: testimonials,
		Notice:       n,
		ChapterOrder: strings.Join(form.InterestedChapters, "\n"),
		BusyLabel:    busy.SubmitLabel(),
	}
}

func chapterInputID(i int) string {
	return "chapter-" + strconv.Itoa(i)
}

// handleLanding serves GET / with an empty form.
func (s *Server) handleLanding(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		methodNotAllowed(w, "GET, HEAD")
		return
	}
	s.render(w, http.StatusOK, "landing.html", s.landingData(r, preorder.NewForm(), notice.Notice{}))
}

// formFromRequest rebuilds the form from a POST. Chapters follow the
// toggle order recorded by the page script, then any checked boxes the
// script did not record, in page order.
func formFromRequest(r *http.Request) preorder.Form {
	form := preorder.NewForm()
	form.Email = r.PostFormValue("email")
	form.MarketingConsent = r.PostFormValue("marketing_consent") != ""

	checked := r.PostForm["chapter"]
	isChecked := make(map[string]bool, len(checked))
	for _, label := range checked {
		isChecked[label] = true
	}
	for _, label := range strings.Split(r.PostFormValue("chapter_order"), "\n") {
		if isChecked[label] {
			form.Toggle(label, true)
		}
	}
	for _, label := range checked {
		form.Toggle(label, true)
	}
	return form
}

func (s *Server) submitDeps() orchestrators.SubmitPreorderDeps {
	return orchestrators.SubmitPreorderDeps{
		PreorderStore: s.stores.PreorderStore,
		Sender:        s.opts.Sender,
		ReplyTo:       s.opts.ReplyTo,
		Now:           s.opts.Now,
	}
}

// handleSubmitPreorder handles the landing page form POST.
// Success re-renders an empty form with the success notice; failure keeps
// the submitted values. The in-flight guard is the page script, so the form
// always comes back idle.
func (s *Server) handleSubmitPreorder(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, "POST")
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}

	form := formFromRequest(r)
	res, err := orchestrators.ExecuteSubmitPreorder(r.Context(), orchestrators.SubmitPreorderCommand{
		Email:              form.Email,
		InterestedChapters: form.InterestedChapters,
		MarketingConsent:   form.MarketingConsent,
	}, s.submitDeps())

	status := http.StatusOK
	switch {
	case err == nil:
		form.Reset()
	case errors.Is(err, orchestrators.ErrInvalidPreorder):
		status = http.StatusUnprocessableEntity
	default:
		status = http.StatusInternalServerError
	}
	s.render(w, status, "landing.html", s.landingData(r, form, res.Notice))
}

type preorderRequest struct {
	Email              string   `json:"email"`
	InterestedChapters []string `json:"interested_chapters"`
	MarketingConsent   bool     `json:"marketing_consent"`
}

type preorderResponse struct {
	Preorder *preorder.Preorder `json:"preorder,omitempty"`
	Notice   notice.Notice      `json:"notice"`
}

// handleAPIPreorders handles POST /api/preorders with a JSON body.
func (s *Server) handleAPIPreorders(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, "POST")
		return
	}
	var req preorderRequest
	if err := strictDecode(w, r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, preorderResponse{Notice: notice.Invalid("Request body is not valid JSON.")})
		return
	}

	// Dedupe through the form so the stored order matches the first occurrence.
	form := preorder.NewForm()
	for _, label := range req.InterestedChapters {
		form.Toggle(label, true)
	}

	res, err := orchestrators.ExecuteSubmitPreorder(r.Context(), orchestrators.SubmitPreorderCommand{
		Email:              req.Email,
		InterestedChapters: form.InterestedChapters,
		MarketingConsent:   req.MarketingConsent,
	}, s.submitDeps())
	switch {
	case err == nil:
		writeJSON(w, http.StatusCreated, preorderResponse{Preorder: &res.Preorder, Notice: res.Notice})
	case errors.Is(err, orchestrators.ErrInvalidPreorder):
		writeJSON(w, http.StatusUnprocessableEntity, preorderResponse{Notice: res.Notice})
	default:
		writeJSON(w, http.StatusInternalServerError, preorderResponse{Notice: res.Notice})
	}
}
