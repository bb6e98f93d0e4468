package tests

import (
	"regexp"
	"strings"
	"testing"

	"github.com/nasmaklabs/chauffeur-sub000/internal/service"
)

// ──────────────────────────────────────────────
// 3. BOOKING REFERENCE GENERATION
// ──────────────────────────────────────────────

var referencePattern = regexp.MustCompile(`^LXC-[A-Z2-9]{8}-[A-Z2-9]{4}$`)

func TestReference_MatchesExpectedFormat(t *testing.T) {
	t.Parallel()

	gen := service.NewReferenceGenerator("LXC")

	ref, err := gen.Generate()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !referencePattern.MatchString(ref) {
		t.Errorf("reference %q does not match PREFIX-XXXXXXXX-XXXX format", ref)
	}
}

func TestReference_ExcludesLookalikeCharacters(t *testing.T) {
	t.Parallel()

	gen := service.NewReferenceGenerator("LXC")

	for i := 0; i < 200; i++ {
		ref, err := gen.Generate()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		body := strings.TrimPrefix(ref, "LXC-")
		if strings.ContainsAny(body, "0O1IL") {
			t.Fatalf("reference %q contains a lookalike character", ref)
		}
	}
}

func TestReference_PrefixUppercased(t *testing.T) {
	t.Parallel()

	gen := service.NewReferenceGenerator("lxc")

	ref, err := gen.Generate()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(ref, "LXC-") {
		t.Errorf("expected uppercase prefix, got %q", ref)
	}
}

func TestReference_ConsecutiveGenerationsDiffer(t *testing.T) {
	t.Parallel()

	gen := service.NewReferenceGenerator("LXC")

	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		ref, err := gen.Generate()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if seen[ref] {
			t.Fatalf("duplicate reference %q after %d generations", ref, i)
		}
		seen[ref] = true
	}
}
