// Package engine implements the duplicate-file scanning pipeline: path
// deduplication, size pre-filtering, content/word matching, match
// post-filtering, best-neighbor grouping, and reference prioritization.
//
// The package only depends on general-purpose algorithm libraries. File
// traversal, tag/audio metadata extraction, fingerprinting, ignore-list
// persistence, and progress UI are all external collaborators — see the
// sibling providers/ packages and cmd/dupescan for concrete ones.
package engine

import (
	"sync"

	"github.com/google/uuid"
)

// SizeFunc materializes a file's size. Implementations may hit disk; the
// engine guarantees it is called at most once per File.
type SizeFunc func(path string) (int64, error)

// ExistsFunc probes whether a path still exists on disk.
type ExistsFunc func(path string) bool

// SameFileFunc reports whether two paths resolve to the same underlying
// file (e.g. via stat device/inode comparison). An error means the
// collision could not be resolved (file vanished, permission denied, ...).
type SameFileFunc func(a, b string) (bool, error)

// File is the file descriptor the engine operates on. Callers construct
// File values from their own traversal/metadata layer; the engine treats
// everything but Words and IsRef as read-only input.
type File struct {
	Path string
	Name string

	// AudioSize is an opaque size-like attribute (e.g. decoded sample
	// count) used by the contents_audio scan type in place of on-disk
	// byte size. Zero means "not available".
	AudioSize int64

	Track  string
	Artist string
	Album  string
	Title  string
	Genre  string
	Year   string

	// IsRef marks a file the caller never wants acted upon. It anchors
	// the group it ends up in. Defaults to false.
	IsRef bool

	// FingerprintKey, when non-empty, is the opaque key an external
	// fingerprint provider computed for this file. The fuzzy_block and
	// exif_timestamp scan types bucket on it; contents_audio buckets on
	// AudioSize instead. Populated by the caller; the engine never
	// computes it.
	FingerprintKey string

	// words is the transient token-bag fingerprint the word matcher
	// caches on first computation for this file, per spec.
	words *wordFingerprint

	sizeFn   SizeFunc
	sizeOnce sync.Once
	size     int64
	sizeErr  error
}

// NewFile constructs a File descriptor. sizeFn may be nil if the size is
// never needed (e.g. a pure tag scan with SizeThreshold disabled).
func NewFile(path, name string, sizeFn SizeFunc) *File {
	return &File{Path: path, Name: name, sizeFn: sizeFn}
}

// Size returns the file's size, materializing it at most once via the
// SizeFunc supplied at construction. A nil SizeFunc yields (0, nil).
func (f *File) Size() (int64, error) {
	f.sizeOnce.Do(func() {
		if f.sizeFn == nil {
			return
		}
		f.size, f.sizeErr = f.sizeFn(f.Path)
	})
	return f.size, f.sizeErr
}

// wordFingerprint is the per-file token bag produced by the fingerprint
// extractor for word-style scans. Exactly one of flat/fields is set.
type wordFingerprint struct {
	flat   multiset
	fields []multiset
}

// Match is an unordered similar-pair with a percentage in [0, 100].
type Match struct {
	First   *File
	Second  *File
	Percent int

	// Partial carries the content-matcher's "partial" flag identity
	// through to presentation without affecting Percent (always 100 for
	// content-style matches). See spec.md §9 open question (a).
	Partial bool
}

// has reports whether the match touches the given file (by pointer).
func (m Match) has(f *File) bool {
	return m.First == f || m.Second == f
}

// other returns the endpoint of m that is not f. f must be one endpoint.
func (m Match) other(f *File) *File {
	if m.First == f {
		return m.Second
	}
	return m.First
}

// Group is a set of >=2 mutually matched files plus a designated
// reference member.
type Group struct {
	ID      uuid.UUID
	Members []*File
	Ref     *File
}

// Size returns the number of members in the group.
func (g *Group) Size() int { return len(g.Members) }

// Dupes returns every member except the reference.
func (g *Group) Dupes() []*File {
	out := make([]*File, 0, len(g.Members)-1)
	for _, m := range g.Members {
		if m != g.Ref {
			out = append(out, m)
		}
	}
	return out
}
