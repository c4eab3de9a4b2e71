package engine

import (
	"regexp"
	"strings"
)

// reDigitEnding matches a bare or bracketed numeric suffix, the same
// shape original_source's RE_DIGIT_ENDING recognizes for "name (2)",
// "name [2]", "name {2}" and plain "name2" duplicate-naming patterns.
var reDigitEnding = regexp.MustCompile(`^(\d+|\(\d+\)|\[\d+\]|\{\d+\})`)

// isSameWithDigit reports whether name is refname with a trailing
// numeric-suffix decoration, e.g. isSameWithDigit("track (2)", "track")
// is true. Ported verbatim from original_source's is_same_with_digit:
// the suffix only needs to start with a digit pattern, not consist
// entirely of one.
func isSameWithDigit(name, refname string) bool {
	if !strings.HasPrefix(name, refname) {
		return false
	}
	end := strings.TrimSpace(name[len(refname):])
	return reDigitEnding.MatchString(end)
}

// defaultKeyFunc is original_source's _key_func: prioritize larger
// files as the reference by sorting on negative size.
func defaultKeyFunc(f *File) int64 {
	size, _ := f.Size()
	return -size
}

// defaultTieBreaker is original_source's _tie_breaker, evaluated when
// two files tie on KeyFunc. It returns true when dupe should replace
// ref as the group's chosen reference.
func defaultTieBreaker(ref, dupe *File) bool {
	refName := strings.ToLower(stripExt(ref.Name))
	dupeName := strings.ToLower(stripExt(dupe.Name))

	if strings.Contains(dupeName, "copy") {
		return false
	}
	if strings.Contains(refName, "copy") {
		return true
	}
	if isSameWithDigit(dupeName, refName) {
		return false
	}
	if isSameWithDigit(refName, dupeName) {
		return true
	}
	return len(dupe.Path) > len(ref.Path)
}

// prioritize picks g.Ref. A file explicitly marked IsRef always wins
// over heuristic selection — spec.md's reference files are never
// second-guessed by key/tie-break scoring, only chosen among each
// other when more than one is present in the same group.
func prioritize(g *Group, cfg Config) {
	pool := g.Members
	var refs []*File
	for _, m := range g.Members {
		if m.IsRef {
			refs = append(refs, m)
		}
	}
	if len(refs) > 0 {
		pool = refs
	}

	best := pool[0]
	for _, f := range pool[1:] {
		bk, fk := cfg.KeyFunc(best), cfg.KeyFunc(f)
		switch {
		case fk < bk:
			best = f
		case fk == bk && cfg.TieBreaker(best, f):
			best = f
		}
	}
	g.Ref = best
}
