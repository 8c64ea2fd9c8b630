package email

import (
	"bytes"
	"html/template"
	"strings"
)

// ConfirmationSubject is the subject line of the preorder confirmation email.
const ConfirmationSubject = "You're on the list!"

var confirmationTmpl = template.Must(template.New("confirmation").Parse(`<p>Hi there,</p>
<p>Thanks for joining the early-access list. We'll email you as soon as the book is ready.</p>
{{- if .Chapters}}
<p>You told us you're most interested in:</p>
<ul>{{range .Chapters}}<li>{{.}}</li>{{end}}</ul>
{{- end}}
{{- if .MarketingConsent}}
<p>We'll also send you the occasional dating tip in the meantime.</p>
{{- end}}
<p>Talk soon.</p>`))

// ConfirmationData is the content personalised into the confirmation email.
type ConfirmationData struct {
	Email            string
	Chapters         []string
	MarketingConsent bool
}

// NewConfirmation builds the confirmation email for a new preorder.
// PRE: data.Email is a validated address
// POST: Returns a request addressed only to data.Email
func NewConfirmation(data ConfirmationData, replyTo string) (SendRequest, error) {
	var body bytes.Buffer
	if err := confirmationTmpl.Execute(&body, data); err != nil {
		return SendRequest{}, err
	}
	return SendRequest{
		To:      []string{strings.TrimSpace(data.Email)},
		Subject: ConfirmationSubject,
		HTML:    body.String(),
		ReplyTo: replyTo,
	}, nil
}
