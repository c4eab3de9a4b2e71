package engine

import "os"

// defaultExists is the fallback ExistsFunc used when Config.Exists is
// nil. It performs a plain stat; callers wanting injectable behavior for
// tests or virtual filesystems should set Config.Exists instead.
func defaultExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// defaultSameFile is the fallback SameFileFunc used when
// Config.SameFile is nil. It reports true only when both paths stat
// successfully and os.SameFile agrees; a stat failure on either side is
// reported as an error, matching original_source's OSError-on-vanished-
// file handling in remove_dupe_paths.
func defaultSameFile(a, b string) (bool, error) {
	ai, err := os.Stat(a)
	if err != nil {
		return false, err
	}
	bi, err := os.Stat(b)
	if err != nil {
		return false, err
	}
	return os.SameFile(ai, bi), nil
}
