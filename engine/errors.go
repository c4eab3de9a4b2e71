package engine

import "errors"

// Per spec.md §7: file-level errors (missing file, stat failure,
// fingerprint-provider failure) are swallowed by Scanner, never
// returned; the engine does no logging of its own. ErrNilFile and
// ErrUnknownScanType mark programmer errors, the only class
// GetDupeGroups returns hard failures for; ErrAborted marks a
// cancelled scan.
var (
	// ErrNilFile is returned when a nil *File slips into the input slice.
	ErrNilFile = errors.New("engine: nil file descriptor")

	// ErrUnknownScanType is returned for a ScanType value that selects
	// neither the word matcher nor a content matcher.
	ErrUnknownScanType = errors.New("engine: unknown scan type")

	// ErrAborted is returned when the supplied Progress reports the scan
	// should stop (spec.md §5's cancellation contract).
	ErrAborted = errors.New("engine: scan aborted")
)
