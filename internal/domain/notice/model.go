package notice

// Variant controls how a notice is presented.
type Variant string

// Notice variants
const (
	VariantDefault     Variant = "default"
	VariantDestructive Variant = "destructive"
)

// Notice is a short user-facing message returned by an operation in place of
// a toast. The caller decides how and where to show it.
type Notice struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Variant     Variant `json:"variant"`
}

// IsZero reports whether there is nothing to show.
func (n Notice) IsZero() bool {
	return n.Title == "" && n.Description == ""
}

// IsDestructive reports whether the notice describes a failure.
func (n Notice) IsDestructive() bool {
	return n.Variant == VariantDestructive
}

// Fixed notices shown by the preorder and admin flows.
var (
	PreorderSaved = Notice{
		Title:       "Success! 🎉",
		Description: "You've been added to our exclusive preorder list. We'll notify you when the book is ready!",
		Variant:     VariantDefault,
	}
	PreorderFailed = Notice{
		Title:       "Oops! Something went wrong",
		Description: "Please try again or contact us directly.",
		Variant:     VariantDestructive,
	}
	LoadFailed = Notice{
		Title:       "Error loading data",
		Description: "Please try refreshing the page.",
		Variant:     VariantDestructive,
	}
)

// Invalid builds the notice for input that failed validation.
func Invalid(description string) Notice {
	return Notice{
		Title:       "Please check your details",
		Description: description,
		Variant:     VariantDestructive,
	}
}
