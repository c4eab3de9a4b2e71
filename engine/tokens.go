package engine

import (
	"path/filepath"
	"strings"
	"unicode"
)

// multiset counts token occurrences. Both the unweighted and the
// weighted (word_weighting) percentages use these occurrence counts;
// weighting additionally scales each occurrence by token length.
type multiset map[string]int

// minTokenLen tokens shorter than this are dropped as noise, matching
// original_source's getwords/getfields length filter.
const minTokenLen = 3

// stripExt removes the final extension from a file name, mirroring
// original_source's rem_file_ext.
func stripExt(name string) string {
	ext := filepath.Ext(name)
	return strings.TrimSuffix(name, ext)
}

// splitTokens lowercases s, splits on runs of non-alphanumeric
// characters, and drops tokens shorter than minTokenLen.
func splitTokens(s string) []string {
	lower := strings.ToLower(s)
	fields := strings.FieldsFunc(lower, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	out := fields[:0:0]
	for _, f := range fields {
		if len(f) >= minTokenLen {
			out = append(out, f)
		}
	}
	return out
}

func newMultiset(tokens []string) multiset {
	m := make(multiset, len(tokens))
	for _, t := range tokens {
		m[t]++
	}
	return m
}

// getWords is the flat token bag for the filename scan type: extension
// stripped, then tokenized.
func getWords(name string) multiset {
	return newMultiset(splitTokens(stripExt(name)))
}

// getFields splits a (extension-stripped) name into whitespace-separated
// fields, each tokenized independently and in order, for the fields
// scan type's position-sensitive comparison.
func getFields(name string) []multiset {
	base := stripExt(name)
	rawFields := strings.Fields(base)
	out := make([]multiset, 0, len(rawFields))
	for _, rf := range rawFields {
		toks := splitTokens(rf)
		if len(toks) == 0 {
			continue
		}
		out = append(out, newMultiset(toks))
	}
	return out
}

// flattenFields merges a field-bag into a single flat multiset, used
// when no_field_order folds positional comparison away.
func flattenFields(fields []multiset) multiset {
	out := make(multiset)
	for _, f := range fields {
		for tok, n := range f {
			out[tok] += n
		}
	}
	return out
}

// getTagWords concatenates the tokens of every scanned tag, in the
// order tags are listed, into a single flat bag for the tag scan type.
func getTagWords(f *File, tags []Tag) multiset {
	out := make(multiset)
	for _, t := range tags {
		for _, tok := range splitTokens(f.tagValue(t)) {
			out[tok]++
		}
	}
	return out
}

func sumCounts(m multiset) int {
	total := 0
	for _, n := range m {
		total += n
	}
	return total
}

// multisetIntersectionCount returns the multiset intersection
// cardinality of a and b: the sum, over every token present in both,
// of the smaller of the two occurrence counts.
func multisetIntersectionCount(a, b multiset) int {
	inter := 0
	for tok, ca := range a {
		if cb, ok := b[tok]; ok {
			if ca < cb {
				inter += ca
			} else {
				inter += cb
			}
		}
	}
	return inter
}

// percentUnweighted computes spec.md §4.3.2's unweighted formula,
// floor(100 * |I| / |U|), over multiset (occurrence-counted)
// cardinalities: |I| is the summed per-token minimum count, |U| is
// |A| + |B| - |I| by inclusion-exclusion. Matching original_source's
// integer-floor-division percentage semantics.
func percentUnweighted(a, b multiset) int {
	sumA, sumB := sumCounts(a), sumCounts(b)
	if sumA == 0 && sumB == 0 {
		return 0
	}
	inter := multisetIntersectionCount(a, b)
	union := sumA + sumB - inter
	if union == 0 {
		return 0
	}
	return inter * 100 / union
}

// weightedCount is spec.md §4.3.2's "sum of len(token) over the
// multiset": every occurrence of a token counts len(token) instead of 1.
func weightedCount(m multiset) int {
	total := 0
	for tok, n := range m {
		total += len(tok) * n
	}
	return total
}

// percentWeighted is percentUnweighted with |·| replaced by
// weightedCount per spec.md §4.3.2's word_weighting formula: both the
// per-token intersection contribution and the two bags' totals are
// scaled by token length, not just by occurrence count.
func percentWeighted(a, b multiset) int {
	sumA, sumB := weightedCount(a), weightedCount(b)
	if sumA == 0 && sumB == 0 {
		return 0
	}
	inter := 0
	for tok, ca := range a {
		cb, ok := b[tok]
		if !ok {
			continue
		}
		n := ca
		if cb < n {
			n = cb
		}
		inter += n * len(tok)
	}
	union := sumA + sumB - inter
	if union == 0 {
		return 0
	}
	return inter * 100 / union
}

func percent(a, b multiset, weighted bool) int {
	if weighted {
		return percentWeighted(a, b)
	}
	return percentUnweighted(a, b)
}

// fieldPercent compares two field-bags position by position and takes
// the minimum across positions: a field present on one side only, or a
// length mismatch, scores that position zero and drags the whole
// comparison down with it. This is what forces "Artist - Title" scans
// to actually agree field-by-field rather than passing on a single
// strong field.
func fieldPercent(a, b []multiset, weighted bool) int {
	n := len(a)
	if len(b) > n {
		n = len(b)
	}
	if n == 0 {
		return 0
	}
	min := 100
	for i := 0; i < n; i++ {
		var fa, fb multiset
		if i < len(a) {
			fa = a[i]
		}
		if i < len(b) {
			fb = b[i]
		}
		if fa == nil || fb == nil {
			min = 0
			continue
		}
		p := percent(fa, fb, weighted)
		if p < min {
			min = p
		}
	}
	return min
}
