package preorder

// Chapters is the fixed, ordered list of chapter labels a reader can pick on
// the preorder form.
var Chapters = []string{
	"Finding Your Perfect Match",
	"First Impressions Matter",
	"Playing Hard to Get: Creating FOMO",
	"Chemistry & Connection",
	"Sealing the Deal",
	"Handling Rejection",
	"Long-Term Commitment",
	"Spotting Bad Investors",
	"Fundraising = Dating?",
	"Knowing When to Walk Away",
}

// ChapterPreview is a teaser card shown on the landing page.
// Description is markdown.
type ChapterPreview struct {
	Title       string
	Emoji       string
	Icon        string
	Description string
	Highlighted bool
}

// Previews are the chapter teasers rendered above the form.
var Previews = []ChapterPreview{
	{
		Title:       "Finding Your Perfect Match",
		Emoji:       "🧭",
		Icon:        "/static/img/icon-perfect-match.svg",
		Description: "How VCs decide if founders are *portfolio-worthy*, and what makes them immediately pass. Learn the traits that create instant alignment.",
		Highlighted: true,
	},
	{
		Title:       "First Impressions Matter",
		Emoji:       "🎯",
		Icon:        "/static/img/icon-first-impressions.svg",
		Description: "The most memorable pitches and what drives that crucial first judgment. Discover the biggest turn-offs in opening moments.",
	},
	{
		Title:       "Chemistry & Connection",
		Emoji:       "🤝",
		Icon:        "/static/img/icon-chemistry.svg",
		Description: "How founder-investor chemistry affects investment decisions and subtle ways to build rapport in early meetings.",
	},
	{
		Title:       "Sealing the Deal",
		Emoji:       "📝",
		Icon:        "/static/img/icon-deal.svg",
		Description: "Signals that founders are ready to confidently close rounds and memorable **term sheet** negotiations.",
	},
}

// IsChapter reports whether label is one of Chapters.
func IsChapter(label string) bool {
	for _, c := range Chapters {
		if c == label {
			return true
		}
	}
	return false
}
