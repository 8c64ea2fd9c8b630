package preorder

// Form holds the state of the preorder signup form between renders.
// INVARIANT: InterestedChapters never contains the same label twice.
type Form struct {
	Email              string
	InterestedChapters []string
	MarketingConsent   bool
	Submitting         bool
}

// NewForm returns the empty initial form.
func NewForm() Form {
	return Form{InterestedChapters: []string{}}
}

// Toggle adds or removes a chapter label.
// PRE: label is a chapter label
// POST: label is present exactly once if checked, absent otherwise; other
// entries keep their relative order
func (f *Form) Toggle(label string, checked bool) {
	idx := f.indexOf(label)
	if checked {
		if idx < 0 {
			f.InterestedChapters = append(f.InterestedChapters, label)
		}
		return
	}
	if idx >= 0 {
		out := make([]string, 0, len(f.InterestedChapters)-1)
		out = append(out, f.InterestedChapters[:idx]...)
		out = append(out, f.InterestedChapters[idx+1:]...)
		f.InterestedChapters = out
	}
}

// IsChecked reports whether label is currently selected.
func (f Form) IsChecked(label string) bool {
	return f.indexOf(label) >= 0
}

// BeginSubmit marks the form as in flight.
// POST: Returns false without changes if a submission is already in flight
func (f *Form) BeginSubmit() bool {
	if f.Submitting {
		return false
	}
	f.Submitting = true
	return true
}

// Reset returns the form to its empty initial state.
func (f *Form) Reset() {
	*f = NewForm()
}

// SubmitLabel is the text on the submit control.
func (f Form) SubmitLabel() string {
	if f.Submitting {
		return "Joining the VIP List..."
	}
	return "Get Early Access 🚀"
}

func (f Form) indexOf(label string) int {
	for i, c := range f.InterestedChapters {
		if c == label {
			return i
		}
	}
	return -1
}
