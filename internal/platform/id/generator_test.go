package id

import (
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestRandomGenerator_NewIDIsUUID(t *testing.T) {
	t.Parallel()

	g := NewRandomGenerator()
	first, err := g.NewID()
	if err != nil {
		t.Fatalf("new id: %v", err)
	}
	second, err := g.NewID()
	if err != nil {
		t.Fatalf("new id: %v", err)
	}
	if first == second {
		t.Fatalf("expected distinct ids")
	}
	if _, err := uuid.Parse(first); err != nil {
		t.Fatalf("expected uuid, got %q: %v", first, err)
	}
}

func TestSanitize(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"  abc-123 ":              "abc-123",
		"":                        "",
		"has space":               "",
		strings.Repeat("x", 129): "",
		"bad\nline":               "",
	}
	for in, want := range tests {
		if got := Sanitize(in); got != want {
			t.Fatalf("Sanitize(%q)=%q want %q", in, got, want)
		}
	}
}
