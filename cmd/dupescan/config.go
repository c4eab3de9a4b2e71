package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"dupescan/engine"
)

// cliConfig is the flat, koanf-addressable shape of everything
// engine.Config needs plus the CLI-only fields (root directory, config
// file path, output options). Layered in increasing priority: built-in
// defaults, an optional dupescan.json, DUPESCAN_-prefixed environment
// variables, then explicit command-line flags — grounded on
// jmylchreest-aide's koanf-based config layering.
type cliConfig struct {
	Root               string `koanf:"root"`
	ScanType           string `koanf:"scan_type"`
	MinMatchPercentage int    `koanf:"min_match_percentage"`
	MatchSimilarWords  bool   `koanf:"match_similar_words"`
	WordWeighting      bool   `koanf:"word_weighting"`
	MixFileKind        bool   `koanf:"mix_file_kind"`
	RequireReference   bool   `koanf:"require_reference"`
	SizeThreshold      int64  `koanf:"size_threshold"`
	ReadTags           bool   `koanf:"read_tags"`
	IgnoreListPath     string `koanf:"ignore_list_path"`
	FingerprintCache   bool   `koanf:"fingerprint_cache"`
}

func defaultCLIConfig() cliConfig {
	return cliConfig{
		Root:               ".",
		ScanType:           "filename",
		MinMatchPercentage: 80,
		MixFileKind:        true,
		FingerprintCache:   true,
	}
}

// loadConfig layers defaults -> configFile (if non-empty and present)
// -> environment -> nothing else; flag overrides are applied by the
// caller afterward (applyFlagOverrides in main.go) so that only flags
// the user actually passed take precedence.
func loadConfig(configFile string) (*koanf.Koanf, error) {
	k := koanf.New(".")

	defaults := defaultCLIConfig()
	if err := k.Load(confmap.Provider(structToMap(defaults), "."), nil); err != nil {
		return nil, fmt.Errorf("config: load defaults: %w", err)
	}

	if _, statErr := os.Stat(configFile); configFile != "" && !os.IsNotExist(statErr) {
		if err := k.Load(file.Provider(configFile), json.Parser()); err != nil {
			return nil, fmt.Errorf("config: load %s: %w", configFile, err)
		}
	}

	if err := k.Load(env.Provider(".", env.Opt{
		Prefix: "DUPESCAN_",
		TransformFunc: func(k, v string) (string, any) {
			key := strings.ToLower(strings.TrimPrefix(k, "DUPESCAN_"))
			return key, v
		},
	}), nil); err != nil {
		return nil, fmt.Errorf("config: load environment: %w", err)
	}

	return k, nil
}

func structToMap(c cliConfig) map[string]any {
	return map[string]any{
		"root":                c.Root,
		"scan_type":           c.ScanType,
		"min_match_percentage": c.MinMatchPercentage,
		"match_similar_words": c.MatchSimilarWords,
		"word_weighting":      c.WordWeighting,
		"mix_file_kind":       c.MixFileKind,
		"require_reference":   c.RequireReference,
		"size_threshold":      c.SizeThreshold,
		"read_tags":           c.ReadTags,
		"ignore_list_path":    c.IgnoreListPath,
		"fingerprint_cache":   c.FingerprintCache,
	}
}

func scanTypeFromString(s string) (engine.ScanType, error) {
	switch strings.ToLower(s) {
	case "filename":
		return engine.ScanFilename, nil
	case "fields":
		return engine.ScanFields, nil
	case "fields_no_order":
		return engine.ScanFieldsNoOrder, nil
	case "tag":
		return engine.ScanTag, nil
	case "folders":
		return engine.ScanFolders, nil
	case "contents":
		return engine.ScanContents, nil
	case "contents_audio":
		return engine.ScanContentsAudio, nil
	case "fuzzy_block":
		return engine.ScanFuzzyBlock, nil
	case "exif_timestamp":
		return engine.ScanExifTimestamp, nil
	default:
		return 0, fmt.Errorf("config: unknown scan_type %q", s)
	}
}

func (c cliConfig) toEngineConfig() (engine.Config, error) {
	st, err := scanTypeFromString(c.ScanType)
	if err != nil {
		return engine.Config{}, err
	}
	cfg := engine.DefaultConfig()
	cfg.ScanType = st
	cfg.MinMatchPercentage = c.MinMatchPercentage
	cfg.MatchSimilarWords = c.MatchSimilarWords
	cfg.WordWeighting = c.WordWeighting
	cfg.MixFileKind = c.MixFileKind
	cfg.RequireReference = c.RequireReference
	cfg.SizeThreshold = c.SizeThreshold
	return cfg, nil
}
