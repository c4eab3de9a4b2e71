package engine

import "testing"

func TestIsPathRedundant_SegmentBasedNotSubstring(t *testing.T) {
	if isPathRedundant("/a/abc", "/a/ab") {
		t.Errorf("/a/abc must not be redundant under /a/ab (substring-only bug)")
	}
	if !isPathRedundant("/a/ab/child", "/a/ab") {
		t.Errorf("/a/ab/child should be redundant under /a/ab")
	}
	if isPathRedundant("/a/ab", "/a/ab") {
		t.Errorf("a path is never redundant under itself")
	}
}

func TestFilterBothReference_DropsRefRefPairs(t *testing.T) {
	a := &File{Path: "/a", Name: "a.mp3", IsRef: true}
	b := &File{Path: "/b", Name: "b.mp3", IsRef: true}
	c := &File{Path: "/c", Name: "c.mp3"}

	matches := []Match{{First: a, Second: b, Percent: 100}, {First: a, Second: c, Percent: 90}}
	out := filterBothReference(matches)
	if len(out) != 1 || out[0].Second != c {
		t.Fatalf("expected only the ref/non-ref pair to survive, got %v", out)
	}
}

func TestFilterRequireReference_PreservesTransitiveLink(t *testing.T) {
	ref := &File{Path: "/ref", Name: "ref.mp3", IsRef: true}
	a := &File{Path: "/a", Name: "a.mp3"}
	b := &File{Path: "/b", Name: "b.mp3"}

	matches := []Match{
		{First: ref, Second: a, Percent: 90},
		{First: a, Second: b, Percent: 85},
	}
	out := filterRequireReference(matches, true, true)
	if len(out) != 2 {
		t.Fatalf("expected both matches preserved via transitive link, got %v", out)
	}
}

func TestFilterRequireReference_DropsUnlinkedNonReferencePair(t *testing.T) {
	a := &File{Path: "/a", Name: "a.mp3"}
	b := &File{Path: "/b", Name: "b.mp3"}
	matches := []Match{{First: a, Second: b, Percent: 90}}

	out := filterRequireReference(matches, true, true)
	if len(out) != 0 {
		t.Fatalf("expected unlinked non-reference pair dropped, got %v", out)
	}
}

func TestFilterIgnoreList_Symmetric(t *testing.T) {
	a := &File{Path: "/a", Name: "a.mp3"}
	b := &File{Path: "/b", Name: "b.mp3"}
	matches := []Match{{First: a, Second: b, Percent: 100}}

	ignore := func(x, y string) bool { return x == "/b" && y == "/a" }
	out := filterIgnoreList(matches, ignore)
	if len(out) != 0 {
		t.Errorf("expected ignore predicate to apply regardless of argument order, got %v", out)
	}
}
