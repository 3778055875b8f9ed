package lists_test

import (
	"testing"

	"smartlists/internal/lists"
)

func TestNormalizeIMDbID(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"tt0133093", "tt0133093"},
		{" TT0133093 ", "tt0133093"},
		{"tt1", "tt1"},
		{"0133093", ""},
		{"tt", ""},
		{"ttabc", ""},
		{"nm0000206", ""},
		{"", ""},
		{"tt0133093/extra", ""},
	}
	for _, tc := range cases {
		if got := lists.NormalizeIMDbID(tc.in); got != tc.want {
			t.Errorf("NormalizeIMDbID(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestNormalizeNumericID(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"42", "42"},
		{" 7 ", "7"},
		{"0042", "42"},
		{"0", ""},
		{"-5", ""},
		{"abc", ""},
		{"", ""},
		{"12.5", ""},
	}
	for _, tc := range cases {
		if got := lists.NormalizeNumericID(tc.in); got != tc.want {
			t.Errorf("NormalizeNumericID(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestFormatNumericID(t *testing.T) {
	if got := lists.FormatNumericID(603); got != "603" {
		t.Fatalf("FormatNumericID(603) = %q", got)
	}
	if got := lists.FormatNumericID(0); got != "" {
		t.Fatalf("FormatNumericID(0) = %q, want empty", got)
	}
	if got := lists.FormatNumericID(-1); got != "" {
		t.Fatalf("FormatNumericID(-1) = %q, want empty", got)
	}
}
