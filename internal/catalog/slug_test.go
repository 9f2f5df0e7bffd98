package catalog

import (
	"math/rand"
	"regexp"
	"testing"
)

var slugShape = regexp.MustCompile(`^[a-z0-9-]*$`)

func TestDeriveSlug(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Dessert Wine!!", "dessert-wine"},
		{"Red", "red"},
		{"  Sparkling   Rosé ", "-sparkling-ros-"},
		{"Port & Sherry", "port--sherry"},
		{"already-a-slug", "already-a-slug"},
		{"", ""},
		{"Tab\tSeparated\nName", "tab-separated-name"},
	}
	for _, tt := range tests {
		if got := DeriveSlug(tt.in); got != tt.want {
			t.Errorf("DeriveSlug(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestDeriveSlugIdempotent(t *testing.T) {
	alphabet := []rune("abcXYZ019 -_!?.é\tÉß ")
	r := rand.New(rand.NewSource(42))
	for i := 0; i < 500; i++ {
		n := r.Intn(24)
		buf := make([]rune, n)
		for j := range buf {
			buf[j] = alphabet[r.Intn(len(alphabet))]
		}
		once := DeriveSlug(string(buf))
		if twice := DeriveSlug(once); twice != once {
			t.Fatalf("not idempotent for %q: %q vs %q", string(buf), once, twice)
		}
		if !slugShape.MatchString(once) {
			t.Fatalf("slug %q has invalid characters", once)
		}
	}
}
