package engine

import (
	"sort"

	"github.com/hbollon/go-edlib"
)

// fuzzyMergeMinSimilarity is the Levenshtein-similarity cutoff treated
// as "same word" for match_similar_words. Restricting merges to tokens
// whose lengths differ by at most one keeps this close to an edit
// distance of one for the short (>=3 char) tokens the tokenizer keeps.
const fuzzyMergeMinSimilarity = 0.75

// equivalence maps every token seen in a scan to a deterministic
// cluster representative, built once per scan (not per pair) so
// match_similar_words stays a single global pass rather than an O(pairs)
// cost, per spec.md §5's concurrency guidance that this kind of
// once-per-scan precomputation must happen before the matcher fans out.
type equivalence struct {
	canon map[string]string
}

// buildEquivalence clusters tokens pairwise by go-edlib Levenshtein
// similarity using union-find, and picks the lexicographically smallest
// token in each cluster as its canonical representative.
func buildEquivalence(allTokens []string) equivalence {
	uniq := make(map[string]struct{}, len(allTokens))
	for _, t := range allTokens {
		uniq[t] = struct{}{}
	}
	list := make([]string, 0, len(uniq))
	for t := range uniq {
		list = append(list, t)
	}
	sort.Strings(list)

	parent := make(map[string]string, len(list))
	for _, t := range list {
		parent[t] = t
	}
	var find func(string) string
	find = func(x string) string {
		if parent[x] != x {
			parent[x] = find(parent[x])
		}
		return parent[x]
	}
	union := func(a, b string) {
		ra, rb := find(a), find(b)
		if ra == rb {
			return
		}
		if ra < rb {
			parent[rb] = ra
		} else {
			parent[ra] = rb
		}
	}

	for i := 0; i < len(list); i++ {
		for j := i + 1; j < len(list); j++ {
			a, b := list[i], list[j]
			d := len(a) - len(b)
			if d < -1 || d > 1 {
				continue
			}
			sim, err := edlib.StringsSimilarity(a, b, edlib.Levenshtein)
			if err != nil || sim < fuzzyMergeMinSimilarity {
				continue
			}
			union(a, b)
		}
	}

	canon := make(map[string]string, len(list))
	for _, t := range list {
		canon[t] = find(t)
	}
	return equivalence{canon: canon}
}

// normalize rewrites a token bag's keys onto their cluster
// representatives, collapsing near-spellings before percentages are
// computed. A zero-value equivalence (match_similar_words disabled)
// returns m unchanged.
func (e equivalence) normalize(m multiset) multiset {
	if len(e.canon) == 0 {
		return m
	}
	out := make(multiset, len(m))
	for tok, n := range m {
		c, ok := e.canon[tok]
		if !ok {
			c = tok
		}
		out[c] += n
	}
	return out
}

func (e equivalence) normalizeFields(fields []multiset) []multiset {
	if len(e.canon) == 0 {
		return fields
	}
	out := make([]multiset, len(fields))
	for i, f := range fields {
		out[i] = e.normalize(f)
	}
	return out
}
