package engine

import (
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// groupPaths projects a ScanResult down to sorted member-path slices per
// group, a deep-equality-comparable shape since *File carries a
// sync.Once and differs by pointer identity across independent scans.
func groupPaths(r ScanResult) [][]string {
	out := make([][]string, 0, len(r.Groups))
	for _, g := range r.Groups {
		paths := make([]string, 0, len(g.Members))
		for _, m := range g.Members {
			paths = append(paths, m.Path)
		}
		sort.Strings(paths)
		out = append(out, paths)
	}
	return out
}

func sizeOf(n int64) SizeFunc {
	return func(string) (int64, error) { return n, nil }
}

// existsAlways stands in for the disk probe so descriptors with
// made-up paths survive the existence post-filter.
func existsAlways(string) bool { return true }

func TestScanner_ContentScanGroupsEqualSizeFiles(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ScanType = ScanContents
	cfg.Exists = existsAlways
	scanner := NewScanner(cfg)

	a := NewFile("/a/song.mp3", "song.mp3", sizeOf(1000))
	b := NewFile("/b/song_copy.mp3", "song_copy.mp3", sizeOf(1000))
	c := NewFile("/c/other.mp3", "other.mp3", sizeOf(2000))

	result, err := scanner.GetDupeGroups([]*File{a, b, c}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Groups) != 1 {
		t.Fatalf("expected exactly one group, got %d", len(result.Groups))
	}
	g := result.Groups[0]
	if g.Size() != 2 {
		t.Fatalf("expected group of 2, got %d", g.Size())
	}
}

func TestScanner_WordScanRespectsMinMatchPercentage(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ScanType = ScanFilename
	cfg.MinMatchPercentage = 100
	scanner := NewScanner(cfg)

	a := NewFile("/a/summer vibes.mp3", "summer vibes.mp3", sizeOf(1))
	b := NewFile("/b/summer nights.mp3", "summer nights.mp3", sizeOf(1))

	result, err := scanner.GetDupeGroups([]*File{a, b}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Groups) != 0 {
		t.Fatalf("expected no groups at 100%% threshold for a partial word overlap, got %d", len(result.Groups))
	}
}

func TestScanner_AtMostOneGroupPerFile(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ScanType = ScanContents
	cfg.Exists = existsAlways
	scanner := NewScanner(cfg)

	files := []*File{
		NewFile("/a/1.mp3", "1.mp3", sizeOf(500)),
		NewFile("/b/2.mp3", "2.mp3", sizeOf(500)),
		NewFile("/c/3.mp3", "3.mp3", sizeOf(500)),
		NewFile("/d/4.mp3", "4.mp3", sizeOf(700)),
	}
	result, err := scanner.GetDupeGroups(files, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	seen := make(map[*File]bool)
	for _, g := range result.Groups {
		if g.Size() < 2 {
			t.Errorf("group smaller than 2: %d", g.Size())
		}
		for _, m := range g.Members {
			if seen[m] {
				t.Errorf("file %s appeared in more than one group", m.Path)
			}
			seen[m] = true
		}
	}
}

func TestScanner_RequireReferenceWithNoReferenceFilesKeepsAllMatches(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ScanType = ScanContents
	cfg.RequireReference = true
	cfg.Exists = existsAlways
	scanner := NewScanner(cfg)

	a := NewFile("/a/1.mp3", "1.mp3", sizeOf(100))
	b := NewFile("/b/2.mp3", "2.mp3", sizeOf(100))

	result, err := scanner.GetDupeGroups([]*File{a, b}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Groups) != 1 {
		t.Fatalf("require_reference must not filter anything when no file is marked reference, got %d groups", len(result.Groups))
	}
}

func TestScanner_DiscardedFileCountExcludesPostFilterDrops(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ScanType = ScanFilename
	cfg.MinMatchPercentage = 50
	cfg.MixFileKind = false
	cfg.Exists = existsAlways
	scanner := NewScanner(cfg)

	// p1-p2 raw-match at 100% and p2-p3 at 66%, but both get dropped by
	// the mix-kind filter (mp3 vs jpg). Only p1-p3 (same extension) survives
	// post-filtering and forms a group. p2 must NOT be counted as
	// discarded: it never belonged to any surviving match, only to ones
	// the post-filter removed before grouping ran.
	p1 := NewFile("/a/song track.mp3", "song track.mp3", sizeOf(1))
	p2 := NewFile("/b/song track.jpg", "song track.jpg", sizeOf(1))
	p3 := NewFile("/c/song track remix.mp3", "song track remix.mp3", sizeOf(1))

	result, err := scanner.GetDupeGroups([]*File{p1, p2, p3}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Groups) != 1 || result.Groups[0].Size() != 2 {
		t.Fatalf("expected one 2-member group (p1, p3), got %+v", result.Groups)
	}
	if result.DiscardedFileCount != 0 {
		t.Errorf("DiscardedFileCount = %d, want 0 (p2's only matches were dropped by post-filter, not by grouping)", result.DiscardedFileCount)
	}
}

func TestScanner_NilFileReturnsError(t *testing.T) {
	scanner := NewScanner(DefaultConfig())
	_, err := scanner.GetDupeGroups([]*File{nil}, nil)
	if err != ErrNilFile {
		t.Fatalf("expected ErrNilFile, got %v", err)
	}
}

func TestScanner_Deterministic(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ScanType = ScanContents
	cfg.Exists = existsAlways
	scanner := NewScanner(cfg)

	newFiles := func() []*File {
		return []*File{
			NewFile("/a/1.mp3", "1.mp3", sizeOf(100)),
			NewFile("/b/2.mp3", "2.mp3", sizeOf(100)),
			NewFile("/c/3.mp3", "3.mp3", sizeOf(100)),
		}
	}

	r1, err := scanner.GetDupeGroups(newFiles(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	r2, err := scanner.GetDupeGroups(newFiles(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(r1.Groups) != len(r2.Groups) {
		t.Fatalf("non-deterministic group count across identical runs")
	}
	if diff := cmp.Diff(groupPaths(r1), groupPaths(r2)); diff != "" {
		t.Errorf("non-deterministic group membership across identical runs (-run1 +run2):\n%s", diff)
	}
}
