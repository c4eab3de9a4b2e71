package engine

// ApplySizeThreshold materializes each file's size exactly once (via
// File.Size, which itself memoizes) and drops files strictly smaller
// than cfg.SizeThreshold. A threshold of zero keeps every file without
// touching Size at all, matching original_source's "size_threshold=0
// disables the pre-filter" default.
func ApplySizeThreshold(files []*File, cfg Config, progress Progress) []*File {
	if cfg.SizeThreshold <= 0 {
		return files
	}
	if progress == nil {
		progress = NullProgress{}
	}

	out := make([]*File, 0, len(files))
	for i, f := range files {
		if progress.Aborted() {
			break
		}
		size, err := f.Size()
		if err != nil {
			// Unreadable size: per spec.md §7 this is a file-level
			// error, swallowed here rather than propagated. Treat as
			// below threshold so a vanished/unreadable file is simply
			// excluded from the scan.
			progress.Step(i+1, len(files), f.Path)
			continue
		}
		if size >= cfg.SizeThreshold {
			out = append(out, f)
		}
		progress.Step(i+1, len(files), f.Path)
	}
	return out
}
