package engine

import "strings"

// DedupeByPath removes later occurrences of paths that resolve to the
// same underlying file, preserving first-seen order. Two entries whose
// lowercased paths collide are kept as distinct files only when
// cfg.SameFile confirms they are genuinely different files; a SameFile
// error (most commonly ENOENT on a vanished path) is treated the same
// as a confirmed collision and the later entry is dropped — the exact
// policy original_source's remove_dupe_paths implements.
//
// Calling DedupeByPath again on its own output is a no-op: no two
// surviving entries share a lowercased path that SameFile reports as
// either identical or erroring.
func DedupeByPath(files []*File, cfg Config) []*File {
	kept := make([]*File, 0, len(files))
	byKey := make(map[string][]*File, len(files))

	for _, f := range files {
		if f == nil {
			continue
		}
		key := strings.ToLower(f.Path)
		dupe := false
		for _, existing := range byKey[key] {
			same, err := cfg.SameFile(existing.Path, f.Path)
			if err != nil || same {
				dupe = true
				break
			}
		}
		if dupe {
			continue
		}
		byKey[key] = append(byKey[key], f)
		kept = append(kept, f)
	}
	return kept
}
