package engine

import (
	"errors"
	"testing"
)

func cfgWithSameFile(fn SameFileFunc) Config {
	c := DefaultConfig()
	c.SameFile = fn
	return c.Normalize()
}

func TestDedupeByPath_CaseInsensitiveCollisionResolvedBySameFile(t *testing.T) {
	a := NewFile("/music/Track.mp3", "Track.mp3", nil)
	b := NewFile("/music/track.mp3", "track.mp3", nil)

	cfg := cfgWithSameFile(func(x, y string) (bool, error) { return true, nil })
	got := DedupeByPath([]*File{a, b}, cfg)
	if len(got) != 1 || got[0] != a {
		t.Fatalf("expected first-seen file kept alone, got %v", got)
	}
}

func TestDedupeByPath_DifferentFilesSameLowercasePathKeptSeparate(t *testing.T) {
	a := NewFile("/music/Track.mp3", "Track.mp3", nil)
	b := NewFile("/music/track.mp3", "track.mp3", nil)

	cfg := cfgWithSameFile(func(x, y string) (bool, error) { return false, nil })
	got := DedupeByPath([]*File{a, b}, cfg)
	if len(got) != 2 {
		t.Fatalf("expected both files kept, got %v", got)
	}
}

func TestDedupeByPath_SameFileErrorTreatedAsDuplicate(t *testing.T) {
	a := NewFile("/music/Track.mp3", "Track.mp3", nil)
	b := NewFile("/music/track.mp3", "track.mp3", nil)

	cfg := cfgWithSameFile(func(x, y string) (bool, error) { return false, errors.New("vanished") })
	got := DedupeByPath([]*File{a, b}, cfg)
	if len(got) != 1 || got[0] != a {
		t.Fatalf("expected later entry dropped on SameFile error, got %v", got)
	}
}

func TestDedupeByPath_Idempotent(t *testing.T) {
	files := []*File{
		NewFile("/a/1.mp3", "1.mp3", nil),
		NewFile("/a/2.mp3", "2.mp3", nil),
		NewFile("/a/1.mp3", "1.mp3", nil),
	}
	cfg := cfgWithSameFile(func(x, y string) (bool, error) { return x == y, nil })

	once := DedupeByPath(files, cfg)
	twice := DedupeByPath(once, cfg)
	if len(once) != len(twice) {
		t.Fatalf("dedupe not idempotent: %d vs %d", len(once), len(twice))
	}
}
