package main

import (
	"testing"

	"dupescan/engine"
)

func TestScanTypeFromString(t *testing.T) {
	cases := map[string]engine.ScanType{
		"filename":        engine.ScanFilename,
		"fields":          engine.ScanFields,
		"fields_no_order": engine.ScanFieldsNoOrder,
		"tag":             engine.ScanTag,
		"folders":         engine.ScanFolders,
		"contents":        engine.ScanContents,
		"contents_audio":  engine.ScanContentsAudio,
		"fuzzy_block":     engine.ScanFuzzyBlock,
		"exif_timestamp":  engine.ScanExifTimestamp,
	}
	for in, want := range cases {
		got, err := scanTypeFromString(in)
		if err != nil {
			t.Errorf("scanTypeFromString(%q) error: %v", in, err)
		}
		if got != want {
			t.Errorf("scanTypeFromString(%q) = %v, want %v", in, got, want)
		}
	}

	if _, err := scanTypeFromString("nonsense"); err == nil {
		t.Error("expected error for unknown scan type")
	}
}

func TestCLIConfig_ToEngineConfig(t *testing.T) {
	c := defaultCLIConfig()
	c.ScanType = "contents"
	c.MinMatchPercentage = 90

	cfg, err := c.toEngineConfig()
	if err != nil {
		t.Fatalf("toEngineConfig: %v", err)
	}
	if cfg.ScanType != engine.ScanContents {
		t.Errorf("ScanType = %v, want ScanContents", cfg.ScanType)
	}
	if cfg.MinMatchPercentage != 90 {
		t.Errorf("MinMatchPercentage = %d, want 90", cfg.MinMatchPercentage)
	}
}
