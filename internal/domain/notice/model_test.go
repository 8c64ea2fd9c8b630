package notice

import "testing"

// TestFixedNotices checks the variants of the fixed flow notices.
func TestFixedNotices(t *testing.T) {
	if PreorderSaved.IsDestructive() {
		t.Error("PreorderSaved should use the default variant")
	}
	for _, n := range []Notice{PreorderFailed, LoadFailed, Invalid("x")} {
		if !n.IsDestructive() {
			t.Errorf("%q should be destructive", n.Title)
		}
	}
}

// TestIsZero only treats an empty notice as zero.
func TestIsZero(t *testing.T) {
	if !(Notice{}).IsZero() {
		t.Error("empty notice should be zero")
	}
	if (Notice{Variant: VariantDestructive}).IsZero() != true {
		t.Error("variant alone has nothing to show")
	}
	if LoadFailed.IsZero() {
		t.Error("LoadFailed should not be zero")
	}
}
