// Command dupescan walks a directory, scans it for duplicate files, and
// prints the resulting groups. It is the CLI surface around the engine
// package: traversal, tag extraction, fingerprinting and presentation
// all live here, never in engine itself.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"dupescan/engine"
	"dupescan/providers/audiotag"
	"dupescan/providers/fingerprint"
	"dupescan/providers/ignorelist"
)

var logger = log.New(os.Stderr, "[dupescan] ", log.LstdFlags)

func main() {
	defer func() {
		if r := recover(); r != nil {
			logger.Printf("fatal: %v", r)
			os.Exit(1)
		}
	}()

	if err := run(os.Args[1:]); err != nil {
		logger.Printf("error: %v", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("dupescan", flag.ExitOnError)
	root := fs.String("root", "", "directory to scan (overrides config)")
	configFile := fs.String("config", "dupescan.json", "path to a JSON config file (optional)")
	scanType := fs.String("scan-type", "", "filename, fields, fields_no_order, tag, folders, contents, contents_audio, fuzzy_block, exif_timestamp")
	minPercent := fs.Int("min-percent", -1, "minimum match percentage (0-100)")
	similarWords := fs.Bool("similar-words", false, "treat near-spelled words as equivalent")
	wordWeighting := fs.Bool("word-weighting", false, "weight word matches by token length")
	requireRef := fs.Bool("require-reference", false, "only report matches touching a reference file")
	readTags := fs.Bool("tags", false, "populate audio tag metadata before scanning")
	ignoreFile := fs.String("ignore-file", "", "path to a persisted ignore-list JSON file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	k, err := loadConfig(*configFile)
	if err != nil {
		return err
	}
	var cli cliConfig
	if err := k.Unmarshal("", &cli); err != nil {
		return fmt.Errorf("config: unmarshal: %w", err)
	}

	applyFlagOverrides(fs, &cli, root, scanType, minPercent, similarWords, wordWeighting, requireRef, readTags, ignoreFile)

	cfg, err := cli.toEngineConfig()
	if err != nil {
		return err
	}

	if cli.IgnoreListPath != "" {
		store, err := ignorelist.Open(cli.IgnoreListPath)
		if err != nil {
			return fmt.Errorf("ignore list: %w", err)
		}
		cfg.IgnoreList = store.Ignored
	}

	var files []*engine.File
	if cfg.ScanType == engine.ScanFolders {
		files, err = walkFolders(cli.Root)
	} else {
		files, err = walkFiles(cli.Root)
	}
	if err != nil {
		return fmt.Errorf("walk %s: %w", cli.Root, err)
	}
	logger.Printf("found %d candidates under %s", len(files), cli.Root)

	needsTags := cli.ReadTags || cfg.ScanType == engine.ScanTag
	if needsTags {
		for _, f := range files {
			if err := audiotag.Populate(f); err != nil {
				logger.Printf("tag read failed for %s: %v", f.Path, err)
			}
		}
	}

	if cfg.ScanType == engine.ScanContentsAudio || cfg.ScanType == engine.ScanFuzzyBlock {
		if err := populateFingerprints(files, cli); err != nil {
			logger.Printf("fingerprinting incomplete: %v", err)
		}
	}

	progress := newStdoutProgress(os.Stdout)
	scanner := engine.NewScanner(cfg)
	result, err := scanner.GetDupeGroups(files, progress)
	progress.done()
	if err != nil {
		return fmt.Errorf("scan: %w", err)
	}

	logger.Printf("found %d group(s), %d file(s) discarded", len(result.Groups), result.DiscardedFileCount)
	renderGroups(os.Stdout, result.Groups)
	return nil
}

func applyFlagOverrides(
	fs *flag.FlagSet,
	cli *cliConfig,
	root, scanType *string,
	minPercent *int,
	similarWords, wordWeighting, requireRef, readTags *bool,
	ignoreFile *string,
) {
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "root":
			cli.Root = *root
		case "scan-type":
			cli.ScanType = *scanType
		case "min-percent":
			cli.MinMatchPercentage = *minPercent
		case "similar-words":
			cli.MatchSimilarWords = *similarWords
		case "word-weighting":
			cli.WordWeighting = *wordWeighting
		case "require-reference":
			cli.RequireReference = *requireRef
		case "tags":
			cli.ReadTags = *readTags
		case "ignore-file":
			cli.IgnoreListPath = *ignoreFile
		}
	})
}

func populateFingerprints(files []*engine.File, cli cliConfig) error {
	var cache *fingerprint.Cache
	if cli.FingerprintCache {
		c, err := fingerprint.OpenCache(cli.Root)
		if err != nil {
			return fmt.Errorf("fingerprint cache: %w", err)
		}
		cache = c
	}
	provider := fingerprint.NewProvider(cache)
	ctx := context.Background()

	for _, f := range files {
		key, err := provider.FingerprintKey(ctx, f.Path)
		if err != nil {
			logger.Printf("fingerprint failed for %s: %v", f.Path, err)
			continue
		}
		f.FingerprintKey = key
	}
	return provider.SaveCache()
}
