package engine

import (
	"runtime"
	"sync"

	"github.com/samber/lo"
)

// buildWordFingerprints computes the per-file token bag for a word-style
// scan type and caches it on File.words. match_similar_words clustering
// runs once, globally, before any pairwise scoring — it is not an
// optimization to skip under load, it is what keeps the scan a single
// pass instead of comparing every token pair against every other token
// pair per file comparison.
func buildWordFingerprints(files []*File, cfg Config) {
	raw := make([]*wordFingerprint, len(files))
	var allTokens []string
	for i, f := range files {
		wf := rawFingerprint(f, cfg)
		raw[i] = wf
		allTokens = append(allTokens, wf.allTokens()...)
	}

	var eq equivalence
	if cfg.MatchSimilarWords {
		eq = buildEquivalence(allTokens)
	}
	for i, f := range files {
		f.words = eq.applyTo(raw[i])
	}
}

func rawFingerprint(f *File, cfg Config) *wordFingerprint {
	switch cfg.ScanType {
	case ScanFilename:
		return &wordFingerprint{flat: getWords(f.Name)}
	case ScanFields:
		fields := getFields(f.Name)
		if cfg.noFieldOrder {
			return &wordFingerprint{flat: flattenFields(fields)}
		}
		return &wordFingerprint{fields: fields}
	case ScanTag:
		return &wordFingerprint{flat: getTagWords(f, cfg.ScannedTags)}
	default:
		return &wordFingerprint{flat: multiset{}}
	}
}

func (w *wordFingerprint) allTokens() []string {
	if w == nil {
		return nil
	}
	if w.flat != nil {
		return lo.Keys(w.flat)
	}
	var all []string
	for _, fb := range w.fields {
		all = append(all, lo.Keys(fb)...)
	}
	return lo.Uniq(all)
}

func (e equivalence) applyTo(w *wordFingerprint) *wordFingerprint {
	if w.flat != nil {
		return &wordFingerprint{flat: e.normalize(w.flat)}
	}
	return &wordFingerprint{fields: e.normalizeFields(w.fields)}
}

func scorePair(f, g *File, weighted bool) int {
	if f.words == nil || g.words == nil {
		return 0
	}
	if f.words.flat != nil {
		return percent(f.words.flat, g.words.flat, weighted)
	}
	return fieldPercent(f.words.fields, g.words.fields, weighted)
}

// invertedIndex maps a token to the indices of every file whose bag
// contains it. Building it once up front (read-only for the rest of the
// scan) is what makes word matching scale: without it every file would
// have to be compared against every other file regardless of whether
// they share a single token.
type invertedIndex map[string][]int

func buildInvertedIndex(files []*File) invertedIndex {
	idx := make(invertedIndex)
	for i, f := range files {
		for _, tok := range f.words.allTokens() {
			idx[tok] = append(idx[tok], i)
		}
	}
	return idx
}

// candidatesAfter returns every file index > i that shares at least one
// token with files[i], per the inverted index. Restricting to indices
// greater than i means each unordered pair is only ever discovered by
// one side, so no cross-goroutine "seen" set is needed.
func candidatesAfter(idx invertedIndex, files []*File, i int) []int {
	seen := make(map[int]bool)
	var out []int
	for _, tok := range files[i].words.allTokens() {
		for _, j := range idx[tok] {
			if j <= i || seen[j] {
				continue
			}
			seen[j] = true
			out = append(out, j)
		}
	}
	return out
}

// wordMatches runs the word matcher: build bags, build the inverted
// index once, then fan out across file ranges, each worker scoring its
// own files' candidate pairs concurrently. The index is built before
// the fan-out and never mutated after, so workers only ever read it.
func wordMatches(files []*File, cfg Config, progress Progress) []Match {
	if progress == nil {
		progress = NullProgress{}
	}
	buildWordFingerprints(files, cfg)
	index := buildInvertedIndex(files)

	n := len(files)
	workers := runtime.GOMAXPROCS(0)
	if workers > n {
		workers = n
	}
	if workers < 1 {
		workers = 1
	}
	chunk := (n + workers - 1) / workers
	if chunk < 1 {
		chunk = 1
	}

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		matches []Match
		done    int
	)
	for start := 0; start < n; start += chunk {
		end := start + chunk
		if end > n {
			end = n
		}
		wg.Go(func() {
			var local []Match
			for i := start; i < end; i++ {
				if progress.Aborted() {
					break
				}
				f := files[i]
				for _, j := range candidatesAfter(index, files, i) {
					g := files[j]
					pct := scorePair(f, g, cfg.WordWeighting)
					if pct >= cfg.MinMatchPercentage {
						local = append(local, canonicalize(Match{First: f, Second: g, Percent: pct}))
					}
				}
			}
			mu.Lock()
			matches = append(matches, local...)
			done += end - start
			progress.Step(done, n, "matching")
			mu.Unlock()
		})
	}
	wg.Wait()

	sortMatches(matches)
	return matches
}
