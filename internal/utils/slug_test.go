package utils

import "testing"

func TestSlugify(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Modern E-Commerce Redesign", "modern-e-commerce-redesign"},
		{"  Spaces  Everywhere  ", "spaces-everywhere"},
		{"Rock & Roll Bakery", "rock-and-roll-bakery"},
		{"O'Brien's Pub Website", "obriens-pub-website"},
		{"UPPER case 123", "upper-case-123"},
		{"---already---dashed---", "already-dashed"},
		{"!!!", ""},
		{"", ""},
	}
	for _, c := range cases {
		if got := Slugify(c.in); got != c.want {
			t.Fatalf("Slugify(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestSlugifyStable(t *testing.T) {
	first := Slugify("Portfolio Site for Jane Doe")
	second := Slugify("Portfolio Site for Jane Doe")
	if first != second {
		t.Fatalf("expected stable slugs, got %q and %q", first, second)
	}
}
