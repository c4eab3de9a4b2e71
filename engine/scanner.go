package engine

// Scanner runs the full duplicate-detection pipeline against a fixed
// Config. It holds no scan-specific state, so the same Scanner can run
// GetDupeGroups repeatedly over different file sets.
type Scanner struct {
	Config Config
}

// NewScanner normalizes cfg once (folding FieldsNoOrder, clamping
// MinMatchPercentage, filling default collaborators) and returns a
// Scanner bound to the normalized config.
func NewScanner(cfg Config) *Scanner {
	return &Scanner{Config: cfg.Normalize()}
}

// ScanResult is what GetDupeGroups returns: the groups found, plus a
// count of files that matched something but ended up in no surviving
// group.
type ScanResult struct {
	Groups              []*Group
	DiscardedFileCount int
}

// GetDupeGroups runs path dedup, size pre-filter, matching, post-
// filtering, grouping and prioritization over files, reporting
// hierarchical progress across the pipeline's phases. It is the single
// operation the engine exposes; everything else in the package exists
// to support it.
func (s *Scanner) GetDupeGroups(files []*File, progress Progress) (ScanResult, error) {
	cfg := s.Config
	if progress == nil {
		progress = NullProgress{}
	}
	for _, f := range files {
		if f == nil {
			return ScanResult{}, ErrNilFile
		}
	}
	if !cfg.ScanType.isWordStyle() && contentKeyFunc(cfg.ScanType) == nil {
		return ScanResult{}, ErrUnknownScanType
	}

	files = DedupeByPath(files, cfg)
	if progress.Aborted() {
		return ScanResult{}, ErrAborted
	}

	files = ApplySizeThreshold(files, cfg, subScope(progress, 0, 10))
	if progress.Aborted() {
		return ScanResult{}, ErrAborted
	}

	var matches []Match
	matchScope := subScope(progress, 10, 65)
	if cfg.ScanType.isWordStyle() {
		matches = wordMatches(files, cfg, matchScope)
	} else {
		matches = contentMatches(files, cfg.ScanType, matchScope)
	}
	if progress.Aborted() {
		return ScanResult{}, ErrAborted
	}

	matches = postFilter(matches, files, cfg)
	matchedFiles := matchedFileSet(matches)
	subScope(progress, 65, 85).Step(1, 1, "post-filter")

	groups := groupMatches(matches)
	subScope(progress, 85, 95).Step(1, 1, "group")

	// discarded_file_count is only computed for word-style scans; it
	// stays 0 for content-style scans (contents, contents_audio, folders,
	// fuzzy_block, exif_timestamp), the same exemption original_source
	// carries under the name Ticket #195. The count covers files that
	// appear in a post-filtered match but in no group, so matches that
	// postFilter dropped never count toward it.
	discarded := 0
	if cfg.ScanType.isWordStyle() {
		total := 0
		for _, g := range groups {
			total += g.Size()
		}
		discarded = len(matchedFiles) - total
	}

	for _, g := range groups {
		prioritize(g, cfg)
	}
	subScope(progress, 95, 100).Step(1, 1, "prioritize")

	return ScanResult{Groups: groups, DiscardedFileCount: discarded}, nil
}

func matchedFileSet(matches []Match) map[*File]bool {
	out := make(map[*File]bool, len(matches)*2)
	for _, m := range matches {
		out[m.First] = true
		out[m.Second] = true
	}
	return out
}
