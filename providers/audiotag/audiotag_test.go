package audiotag

import (
	"testing"

	"dupescan/engine"
)

func TestApplyVorbisComments(t *testing.T) {
	f := &engine.File{}
	applyVorbisComments(f, []string{
		"ARTIST=Test Artist",
		"TITLE=Test Title",
		"ALBUM=Test Album",
		"GENRE=Electronic",
		"DATE=2014-03-01",
		"TRACKNUMBER=04",
		"not a pair",
	})

	if f.Artist != "Test Artist" {
		t.Errorf("Artist = %q", f.Artist)
	}
	if f.Title != "Test Title" {
		t.Errorf("Title = %q", f.Title)
	}
	if f.Year != "2014" {
		t.Errorf("Year = %q, want parsed leading year", f.Year)
	}
	if f.Track != "04" {
		t.Errorf("Track = %q", f.Track)
	}
}

func TestParseYear(t *testing.T) {
	cases := map[string]string{
		"2014-03-01": "2014",
		"2014":       "2014",
		"not-a-year": "not-a-year",
	}
	for in, want := range cases {
		if got := parseYear(in); got != want {
			t.Errorf("parseYear(%q) = %q, want %q", in, got, want)
		}
	}
}
