package engine

import (
	"strings"
	"testing"
)

func TestBuildEquivalence_ClustersNearSpellings(t *testing.T) {
	eq := buildEquivalence([]string{"color", "colour", "unrelated"})
	if eq.canon["color"] != eq.canon["colour"] {
		t.Errorf("expected 'color' and 'colour' to share a cluster representative")
	}
	if eq.canon["unrelated"] == eq.canon["color"] {
		t.Errorf("expected 'unrelated' to stay in its own cluster")
	}
}

func TestEquivalence_NormalizeNoOpWhenEmpty(t *testing.T) {
	var eq equivalence
	m := newMultiset([]string{"foo", "bar"})
	out := eq.normalize(m)
	if len(out) != len(m) {
		t.Errorf("expected unchanged bag when equivalence is empty")
	}
}

func TestMatchSimilarWords_MergesAcrossPair(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ScanType = ScanFilename
	cfg.MatchSimilarWords = true
	cfg.MinMatchPercentage = 50
	cfg.Exists = existsAlways

	a := NewFile("/a/favorite color.mp3", "favorite color.mp3", sizeOf(1))
	b := NewFile("/b/favorite colour.mp3", "favorite colour.mp3", sizeOf(1))

	scanner := NewScanner(cfg)
	result, err := scanner.GetDupeGroups([]*File{a, b}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Groups) != 1 {
		t.Fatalf("expected color/colour to merge into one match with match_similar_words on, got %d groups", len(result.Groups))
	}
}

func FuzzIsSameWithDigit(f *testing.F) {
	f.Add("track (2)", "track")
	f.Add("trackish", "track")
	f.Add("", "")
	f.Fuzz(func(t *testing.T, name, ref string) {
		// Must never panic regardless of input, and must always require
		// name to literally start with ref.
		got := isSameWithDigit(name, ref)
		if got && !strings.HasPrefix(name, ref) {
			t.Errorf("isSameWithDigit(%q, %q) = true but name does not start with ref", name, ref)
		}
	})
}
