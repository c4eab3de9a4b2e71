package engine

import (
	"path/filepath"
	"sort"
	"strings"
)

// isPathRedundant reports whether child sits inside parent's directory
// tree, compared segment by segment rather than by raw substring. This
// is the fix for spec.md §9(b)'s REDESIGN FLAG: a naive
// strings.HasPrefix(child, parent) treats "/ab" as redundant under
// "/a", because "/ab" does start with the string "/a". Splitting both
// sides into path segments first means parent must be a true sequence
// of leading segments of child.
func isPathRedundant(child, parent string) bool {
	childSeg := strings.Split(filepath.ToSlash(child), "/")
	parentSeg := strings.Split(filepath.ToSlash(parent), "/")
	if len(parentSeg) >= len(childSeg) {
		return false
	}
	for i, s := range parentSeg {
		if childSeg[i] != s {
			return false
		}
	}
	return true
}

// filterFolderRedundancy drops a folder match only when both endpoints
// are redundant under some other matched folder, mirroring
// original_source's rule that a parent/child folder pair both already
// covered by their own higher-level matches shouldn't also match each
// other directly.
func filterFolderRedundancy(matches []Match) []Match {
	pathSet := make(map[string]bool)
	for _, m := range matches {
		pathSet[m.First.Path] = true
		pathSet[m.Second.Path] = true
	}
	paths := make([]string, 0, len(pathSet))
	for p := range pathSet {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	marked := make(map[string]bool)
	lastPath := ""
	for _, p := range paths {
		if lastPath != "" && isPathRedundant(p, lastPath) {
			marked[p] = true
		} else {
			lastPath = p
		}
	}

	out := make([]Match, 0, len(matches))
	for _, m := range matches {
		if marked[m.First.Path] && marked[m.Second.Path] {
			continue
		}
		out = append(out, m)
	}
	return out
}

// filterMixFileKind drops matches between files of differing extensions
// when mix_file_kind is disabled.
func filterMixFileKind(matches []Match) []Match {
	out := make([]Match, 0, len(matches))
	for _, m := range matches {
		if !strings.EqualFold(filepath.Ext(m.First.Name), filepath.Ext(m.Second.Name)) {
			continue
		}
		out = append(out, m)
	}
	return out
}

// filterExistence drops matches whose endpoint has since vanished from
// disk. A file-level condition, swallowed rather than surfaced as an
// error per spec.md §7.
func filterExistence(matches []Match, exists ExistsFunc) []Match {
	out := make([]Match, 0, len(matches))
	for _, m := range matches {
		if !exists(m.First.Path) || !exists(m.Second.Path) {
			continue
		}
		out = append(out, m)
	}
	return out
}

// filterBothReference drops matches where both endpoints are reference
// files: two references can never be "the duplicate" of each other.
func filterBothReference(matches []Match) []Match {
	out := make([]Match, 0, len(matches))
	for _, m := range matches {
		if m.First.IsRef && m.Second.IsRef {
			continue
		}
		out = append(out, m)
	}
	return out
}

// fileLinkedToRef reports whether path appears, on either side, of some
// match whose other side is a reference file.
func fileLinkedToRef(path string, matches []Match) bool {
	for _, a := range matches {
		if a.First.Path == path && a.Second.IsRef {
			return true
		}
		if a.Second.Path == path && a.First.IsRef {
			return true
		}
	}
	return false
}

// filterRequireReference, when require_reference is set and the file
// set actually contains at least one reference file, drops matches
// between two non-reference files unless one of their endpoints is
// separately linked to a reference file elsewhere in the match set —
// the two-sided lookahead that preserves transitive grouping instead of
// shattering a group the moment its reference member is excluded.
func filterRequireReference(matches []Match, anyRef, require bool) []Match {
	if !require || !anyRef {
		return matches
	}
	out := make([]Match, 0, len(matches))
	for _, m := range matches {
		if m.First.IsRef || m.Second.IsRef {
			out = append(out, m)
			continue
		}
		if fileLinkedToRef(m.First.Path, matches) || fileLinkedToRef(m.Second.Path, matches) {
			out = append(out, m)
		}
	}
	return out
}

// filterIgnoreList drops matches an ignore predicate has dismissed,
// checked in both directions so the predicate need not be symmetric
// itself (though well-behaved implementations will be).
func filterIgnoreList(matches []Match, ignore IgnorePredicate) []Match {
	if ignore == nil {
		return matches
	}
	out := make([]Match, 0, len(matches))
	for _, m := range matches {
		if ignore(m.First.Path, m.Second.Path) || ignore(m.Second.Path, m.First.Path) {
			continue
		}
		out = append(out, m)
	}
	return out
}

// postFilter runs the ordered filter pipeline from spec.md §4.4 /
// original_source's get_dupe_groups. Order matters: folder redundancy
// and mix-kind only make sense before existence/reference filtering
// narrows the set further.
func postFilter(matches []Match, files []*File, cfg Config) []Match {
	if cfg.ScanType == ScanFolders {
		matches = filterFolderRedundancy(matches)
	}
	if !cfg.MixFileKind {
		matches = filterMixFileKind(matches)
	}
	matches = filterExistence(matches, cfg.Exists)
	matches = filterBothReference(matches)

	anyRef := false
	for _, f := range files {
		if f.IsRef {
			anyRef = true
			break
		}
	}
	matches = filterRequireReference(matches, anyRef, cfg.RequireReference)
	matches = filterIgnoreList(matches, cfg.IgnoreList)
	return matches
}
