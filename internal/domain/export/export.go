package export

import (
	"strings"
	"time"

	"golang.org/x/text/language"

	"preorder/internal/domain/preorder"
)

// Header is the fixed first row of a preorder export.
var Header = []string{"Email", "Interested Chapters", "Marketing Consent", "Signup Date"}

// ContentType is served with the export download.
const ContentType = "text/csv"

// Locale selects how signup dates are written.
type Locale struct {
	Tag        language.Tag
	DateLayout string
}

// DefaultLocale is used when the viewer's language cannot be matched.
var DefaultLocale = Locale{Tag: language.AmericanEnglish, DateLayout: "1/2/2006"}

// supported lists the short-date layouts for each matched locale.
// The first entry is the matcher's fallback.
var supported = []Locale{
	DefaultLocale,
	{Tag: language.BritishEnglish, DateLayout: "02/01/2006"},
	{Tag: language.German, DateLayout: "2.1.2006"},
	{Tag: language.French, DateLayout: "02/01/2006"},
	{Tag: language.Spanish, DateLayout: "2/1/2006"},
	{Tag: language.Dutch, DateLayout: "2-1-2006"},
	{Tag: language.Japanese, DateLayout: "2006/1/2"},
}

var matcher = language.NewMatcher(supportedTags())

func supportedTags() []language.Tag {
	tags := make([]language.Tag, len(supported))
	for i, l := range supported {
		tags[i] = l.Tag
	}
	return tags
}

// ResolveLocale matches an Accept-Language header value to a supported locale.
// PRE: acceptLanguage may be empty or malformed
// POST: Returns DefaultLocale when nothing matches
func ResolveLocale(acceptLanguage string) Locale {
	acceptLanguage = strings.TrimSpace(acceptLanguage)
	if acceptLanguage == "" {
		return DefaultLocale
	}
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return DefaultLocale
	}
	_, idx, conf := matcher.Match(tags...)
	if conf == language.No {
		return DefaultLocale
	}
	return supported[idx]
}

// FormatDate writes t as a short date (no time) in the locale's layout.
// Dates are taken in UTC so the output does not depend on the server zone.
func (l Locale) FormatDate(t time.Time) string {
	layout := l.DateLayout
	if layout == "" {
		layout = DefaultLocale.DateLayout
	}
	return t.UTC().Format(layout)
}

// PreordersCSV renders the loaded preorders as a delimited text payload.
// Every field is wrapped in double quotes and nothing inside is escaped, so
// an email or chapter containing '"' produces a malformed row.
// PRE: records is the in-memory set already shown on the dashboard
// POST: Returns len(records)+1 lines joined by "\n"; same input, same output
func PreordersCSV(records []preorder.Preorder, loc Locale) string {
	lines := make([]string, 0, len(records)+1)
	lines = append(lines, strings.Join(Header, ","))
	for _, p := range records {
		lines = append(lines, quoteRow(
			p.Email,
			p.JoinedChapters(),
			p.ConsentLabel(),
			loc.FormatDate(p.CreatedAt),
		))
	}
	return strings.Join(lines, "\n")
}

// Filename names the download after the current UTC date.
func Filename(now time.Time) string {
	return "book-preorders-" + now.UTC().Format("2006-01-02") + ".csv"
}

func quoteRow(fields ...string) string {
	var sb strings.Builder
	for i, f := range fields {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteByte('"')
		sb.WriteString(f)
		sb.WriteByte('"')
	}
	return sb.String()
}
