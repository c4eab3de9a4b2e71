package engine

import (
	"sort"
	"strconv"
)

// contentKeyFunc returns the attribute extractor a content-style scan
// type buckets files by. A nil return means st is not content-style.
func contentKeyFunc(st ScanType) func(*File) (string, bool) {
	switch st {
	case ScanContents, ScanFolders:
		return func(f *File) (string, bool) {
			size, err := f.Size()
			if err != nil {
				return "", false
			}
			return strconv.FormatInt(size, 10), true
		}
	case ScanContentsAudio:
		return func(f *File) (string, bool) {
			if f.AudioSize <= 0 {
				return "", false
			}
			return strconv.FormatInt(f.AudioSize, 10), true
		}
	case ScanFuzzyBlock, ScanExifTimestamp:
		return func(f *File) (string, bool) {
			if f.FingerprintKey == "" {
				return "", false
			}
			return f.FingerprintKey, true
		}
	default:
		return nil
	}
}

// contentMatches buckets files by an exact-equality attribute (size,
// audiosize, or an externally computed fingerprint key) and emits every
// pair within a bucket at 100%. This covers Folders, Contents,
// ContentsAudio, FuzzyBlock and ExifTimestamp — original_source routes
// all of these through the same getmatches_by_contents codepath.
//
// Partial is set for ContentsAudio per spec.md §9(a): the flag's
// identity is preserved on the match for callers to surface, but it
// never changes Percent (always 100 here).
func contentMatches(files []*File, st ScanType, progress Progress) []Match {
	keyFn := contentKeyFunc(st)
	if keyFn == nil {
		return nil
	}
	if progress == nil {
		progress = NullProgress{}
	}
	partial := st == ScanContentsAudio

	buckets := make(map[string][]*File)
	for i, f := range files {
		if progress.Aborted() {
			break
		}
		if key, ok := keyFn(f); ok {
			buckets[key] = append(buckets[key], f)
		}
		progress.Step(i+1, len(files), f.Path)
	}

	var matches []Match
	for _, group := range buckets {
		for i := 0; i < len(group); i++ {
			for j := i + 1; j < len(group); j++ {
				matches = append(matches, canonicalize(Match{
					First: group[i], Second: group[j], Percent: 100, Partial: partial,
				}))
			}
		}
	}
	sortMatches(matches)
	return matches
}

// canonicalize orders a match's endpoints by path so downstream grouping
// and tests see a deterministic endpoint order regardless of which file
// was discovered first.
func canonicalize(m Match) Match {
	if m.First.Path > m.Second.Path {
		m.First, m.Second = m.Second, m.First
	}
	return m
}

// sortMatches orders matches by (first path, second path, percent desc)
// for deterministic downstream grouping, per spec.md §8's determinism
// property.
func sortMatches(matches []Match) {
	sort.Slice(matches, func(i, j int) bool {
		a, b := matches[i], matches[j]
		if a.First.Path != b.First.Path {
			return a.First.Path < b.First.Path
		}
		if a.Second.Path != b.Second.Path {
			return a.Second.Path < b.Second.Path
		}
		return a.Percent > b.Percent
	})
}
