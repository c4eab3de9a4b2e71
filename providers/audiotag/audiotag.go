// Package audiotag populates engine.File tag fields and AudioSize by
// reading on-disk audio metadata. It is the file-system/metadata-
// extraction collaborator spec.md keeps deliberately out of the engine
// package.
package audiotag

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/bogem/id3v2/v2"
	goflac "github.com/go-flac/go-flac"
	"github.com/go-flac/flacpicture"
	"github.com/go-flac/flacvorbis"
	mflac "github.com/mewkiz/flac"

	"dupescan/engine"
)

// Populate fills in f's tag fields (and AudioSize for FLAC) by reading
// f.Path. Files of an unrecognized format are left untouched rather
// than erroring: tag extraction is best-effort, matching spec.md §7's
// file-level-error policy of swallowing rather than propagating.
func Populate(f *engine.File) error {
	switch strings.ToLower(filepath.Ext(f.Path)) {
	case ".mp3":
		return populateMP3(f)
	case ".flac":
		return populateFLAC(f)
	default:
		return nil
	}
}

func populateMP3(f *engine.File) error {
	tag, err := id3v2.Open(f.Path, id3v2.Options{Parse: true})
	if err != nil {
		return fmt.Errorf("audiotag: open %s: %w", f.Path, err)
	}
	defer tag.Close()

	f.Artist = tag.Artist()
	f.Title = tag.Title()
	f.Album = tag.Album()
	f.Genre = tag.Genre()
	f.Year = tag.Year()
	return nil
}

func populateFLAC(f *engine.File) error {
	stream, err := goflac.ParseFile(f.Path)
	if err != nil {
		return fmt.Errorf("audiotag: parse flac %s: %w", f.Path, err)
	}

	for _, meta := range stream.Meta {
		if meta.Type != goflac.VorbisComment {
			continue
		}
		cmt, err := flacvorbis.ParseFromMetaDataBlock(*meta)
		if err != nil {
			continue
		}
		applyVorbisComments(f, cmt.Comments)
	}

	if size, err := audioSize(f.Path); err == nil {
		f.AudioSize = size
	}
	return nil
}

func applyVorbisComments(f *engine.File, comments []string) {
	for _, c := range comments {
		key, value, ok := strings.Cut(c, "=")
		if !ok {
			continue
		}
		switch strings.ToUpper(key) {
		case "ARTIST":
			f.Artist = value
		case "TITLE":
			f.Title = value
		case "ALBUM":
			f.Album = value
		case "GENRE":
			f.Genre = value
		case "DATE", "YEAR":
			f.Year = parseYear(value)
		case "TRACKNUMBER":
			f.Track = value
		}
	}
}

// audioSize returns the FLAC stream's total decoded sample count (via
// its STREAMINFO block), a duration-derived attribute distinct from the
// file's on-disk byte size — what the contents_audio scan type buckets
// on instead of raw size.
func audioSize(path string) (int64, error) {
	stream, err := mflac.ParseFile(path)
	if err != nil {
		return 0, fmt.Errorf("audiotag: decode flac stream %s: %w", path, err)
	}
	defer stream.Close()
	return int64(stream.Info.NSamples), nil
}

// HasEmbeddedArt reports whether a FLAC file carries an embedded
// picture block, used by the CLI report's art column.
func HasEmbeddedArt(path string) bool {
	stream, err := goflac.ParseFile(path)
	if err != nil {
		return false
	}
	for _, meta := range stream.Meta {
		if meta.Type != goflac.Picture {
			continue
		}
		if _, err := flacpicture.ParseFromMetaDataBlock(*meta); err == nil {
			return true
		}
	}
	return false
}

// parseYear extracts a leading numeric year out of a raw FLAC DATE tag
// such as "2014-03-01", falling back to the raw string on failure.
func parseYear(raw string) string {
	year, _, ok := strings.Cut(raw, "-")
	if !ok {
		year = raw
	}
	if _, err := strconv.Atoi(year); err != nil {
		return raw
	}
	return year
}
