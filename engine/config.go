package engine

// ScanType selects which matcher strategy and attribute extraction
// Scanner uses. Numeric values mirror the groupings original_source's
// scanner.py relies on to decide discarded_file_count handling.
type ScanType int

const (
	ScanFilename ScanType = iota
	ScanFields
	ScanFieldsNoOrder
	ScanTag
	ScanFolders
	ScanContents
	ScanContentsAudio
	_
	_
	_
	ScanFuzzyBlock
	ScanExifTimestamp
)

// isWordStyle reports whether st uses the word matcher (and therefore
// participates in discarded_file_count accounting — see scanner.go).
func (st ScanType) isWordStyle() bool {
	switch st {
	case ScanFilename, ScanFields, ScanFieldsNoOrder, ScanTag:
		return true
	default:
		return false
	}
}

// Tag identifies a scannable metadata field.
type Tag int

const (
	TagTrack Tag = iota
	TagArtist
	TagAlbum
	TagTitle
	TagGenre
	TagYear
)

func (f *File) tagValue(t Tag) string {
	switch t {
	case TagTrack:
		return f.Track
	case TagArtist:
		return f.Artist
	case TagAlbum:
		return f.Album
	case TagTitle:
		return f.Title
	case TagGenre:
		return f.Genre
	case TagYear:
		return f.Year
	default:
		return ""
	}
}

// IgnorePredicate reports whether a path pair should never be matched.
// Implementations must be symmetric: Ignored(a, b) == Ignored(b, a).
type IgnorePredicate func(a, b string) bool

// KeyFunc extracts an ordering key used by the default prioritizer
// (spec.md's _key_func). Higher-priority references sort first.
type KeyFunc func(*File) int64

// TieBreaker decides, for two files tied on KeyFunc, whether dupe should
// be preferred over ref as the group's reference (spec.md's
// _tie_breaker: returns true when dupe should replace ref).
type TieBreaker func(ref, dupe *File) bool

// Config enumerates every scan option from spec.md §6.
type Config struct {
	ScanType ScanType

	// ScannedTags restricts which tags the Tag scan type concatenates.
	// Defaults to {Artist, Title} per original_source's class default
	// when empty.
	ScannedTags []Tag

	MinMatchPercentage int
	MatchSimilarWords  bool
	WordWeighting      bool
	MixFileKind        bool
	RequireReference   bool
	SizeThreshold      int64

	IgnoreList IgnorePredicate

	KeyFunc    KeyFunc
	TieBreaker TieBreaker

	Exists   ExistsFunc
	SameFile SameFileFunc

	// noFieldOrder is the folded effective flag for ScanFieldsNoOrder,
	// computed once by Normalize and never mutated afterward.
	noFieldOrder bool
}

// DefaultConfig returns the class defaults original_source's Scanner
// uses (match_similar_words=False, min_match_percentage=80,
// mix_file_kind=True, require_reference=False, scan_type=Filename,
// scanned_tags={artist, title}, word_weighting=False).
func DefaultConfig() Config {
	return Config{
		ScanType:           ScanFilename,
		ScannedTags:        []Tag{TagArtist, TagTitle},
		MinMatchPercentage: 80,
		MixFileKind:        true,
	}
}

// Normalize folds ScanFieldsNoOrder into ScanFields with noFieldOrder set,
// clamps MinMatchPercentage to [0, 100], and fills in default
// collaborators. It returns a new Config; the receiver is never mutated.
func (c Config) Normalize() Config {
	out := c
	if out.ScanType == ScanFieldsNoOrder {
		out.ScanType = ScanFields
		out.noFieldOrder = true
	}
	if out.MinMatchPercentage < 0 {
		out.MinMatchPercentage = 0
	}
	if out.MinMatchPercentage > 100 {
		out.MinMatchPercentage = 100
	}
	if len(out.ScannedTags) == 0 {
		out.ScannedTags = []Tag{TagArtist, TagTitle}
	}
	if out.KeyFunc == nil {
		out.KeyFunc = defaultKeyFunc
	}
	if out.TieBreaker == nil {
		out.TieBreaker = defaultTieBreaker
	}
	if out.Exists == nil {
		out.Exists = defaultExists
	}
	if out.SameFile == nil {
		out.SameFile = defaultSameFile
	}
	return out
}
