package bangla

import (
	"testing"
	"time"
)

func TestDigits(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"0123456789", "০১২৩৪৫৬৭৮৯"},
		{"2026", "২০২৬"},
		{"no digits", "no digits"},
		{"mixed a1b2", "mixed a১b২"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := Digits(tt.input); got != tt.want {
			t.Errorf("Digits(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestDate(t *testing.T) {
	d := time.Date(2026, time.August, 15, 10, 30, 0, 0, time.UTC)
	want := "১৫ আগস্ট ২০২৬"
	if got := Date(d); got != want {
		t.Errorf("Date = %q, want %q", got, want)
	}
}

func TestDateWithWeekday(t *testing.T) {
	// 2026-08-15 is a Saturday.
	d := time.Date(2026, time.August, 15, 0, 0, 0, 0, time.UTC)
	want := "শনিবার, ১৫ আগস্ট ২০২৬"
	if got := DateWithWeekday(d); got != want {
		t.Errorf("DateWithWeekday = %q, want %q", got, want)
	}
}

func TestDateSingleDigitDay(t *testing.T) {
	d := time.Date(2026, time.January, 5, 0, 0, 0, 0, time.UTC)
	want := "৫ জানুয়ারি ২০২৬"
	if got := Date(d); got != want {
		t.Errorf("Date = %q, want %q", got, want)
	}
}
