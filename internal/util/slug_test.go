package util

import "testing"

func TestSlugify(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Present Continuous", "present-continuous"},
		{"  Airport   Survival  ", "airport-survival"},
		{"First Conditional!", "first-conditional"},
		{"snake_case_title", "snake-case-title"},
		{"Already-Hyphenated", "already-hyphenated"},
		{"¿Qué tal? (B1)", "qué-tal-b1"},
		{"---", ""},
		{"", ""},
		{"Trailing punctuation...", "trailing-punctuation"},
	}

	for _, tc := range cases {
		if got := Slugify(tc.in); got != tc.want {
			t.Errorf("Slugify(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
