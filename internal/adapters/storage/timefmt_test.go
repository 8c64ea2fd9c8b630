package storage

import (
	"testing"
	"time"
)

// TestFormatTime_SortsChronologically checks that zone offsets do not break ordering.
func TestFormatTime_SortsChronologically(t *testing.T) {
	earlier := time.Date(2026, 3, 1, 23, 0, 0, 0, time.FixedZone("NZDT", 13*3600)) // 10:00 UTC
	later := time.Date(2026, 3, 1, 11, 0, 0, 0, time.UTC)

	if !(FormatTime(earlier) < FormatTime(later)) {
		t.Errorf("FormatTime(%v)=%q should sort before FormatTime(%v)=%q",
			earlier, FormatTime(earlier), later, FormatTime(later))
	}
}

// TestFormatTime_FixedWidthFraction keeps sub-second values in order.
// PRE: pairs inside one second and across a whole-second boundary
// POST: text order equals time order and every value has the same length
func TestFormatTime_FixedWidthFraction(t *testing.T) {
	base := time.Date(2026, 3, 18, 8, 0, 5, 0, time.UTC)
	tests := []struct {
		name           string
		earlier, later time.Time
	}{
		{"same second", base.Add(100 * time.Millisecond), base.Add(120 * time.Millisecond)},
		{"whole second before half", base, base.Add(500 * time.Millisecond)},
		{"half before next second", base.Add(500 * time.Millisecond), base.Add(time.Second)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, b := FormatTime(tt.earlier), FormatTime(tt.later)
			if !(a < b) {
				t.Errorf("%q should sort before %q", a, b)
			}
			if len(a) != len(b) {
				t.Errorf("lengths differ: %q vs %q", a, b)
			}
		})
	}
	if got := FormatTime(base); got != "2026-03-18T08:00:05.000000000Z" {
		t.Errorf("FormatTime=%q", got)
	}
	back, err := ParseTime(FormatTime(base.Add(120 * time.Millisecond)))
	if err != nil || !back.Equal(base.Add(120*time.Millisecond)) {
		t.Errorf("round trip=%v err=%v", back, err)
	}
}

// TestParseTime accepts the layouts that appear in the database.
func TestParseTime(t *testing.T) {
	want := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	for _, in := range []string{
		"2026-03-01T10:00:00Z",
		"2026-03-01T23:00:00+13:00",
		"2026-03-01 10:00:00",
	} {
		got, err := ParseTime(in)
		if err != nil {
			t.Fatalf("ParseTime(%q): %v", in, err)
		}
		if !got.Equal(want) {
			t.Errorf("ParseTime(%q)=%v want %v", in, got, want)
		}
	}
	if _, err := ParseTime("yesterday"); err == nil {
		t.Error("expected error for unparseable input")
	}
}
