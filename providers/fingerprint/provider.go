package fingerprint

import (
	"context"
	"os"
)

// Provider computes and memoizes engine.File.FingerprintKey values. It
// never touches engine itself (engine has no notion of caching or
// fpcalc); callers set FingerprintKey directly from what Provider
// returns.
type Provider struct {
	cache *Cache
}

// NewProvider wraps an optional cache. A nil cache disables
// memoization: every call shells out to fpcalc.
func NewProvider(cache *Cache) *Provider {
	return &Provider{cache: cache}
}

// FingerprintKey returns the bucket key to assign a file's
// FingerprintKey field, which the engine buckets on for fuzzy_block and
// exif_timestamp scans (contents_audio buckets on AudioSize). An
// empty string, nil error result means no fingerprint could be computed
// (unsupported format, fpcalc missing) — the caller should leave the
// file's FingerprintKey unset, which excludes it from content-style
// bucketing rather than erroring the scan.
func (p *Provider) FingerprintKey(ctx context.Context, path string) (string, error) {
	info, statErr := os.Stat(path)
	if statErr == nil && p.cache != nil {
		if e, ok := p.cache.Get(path, info.Size(), info.ModTime()); ok {
			return Key(&Fingerprint{DurationSec: e.DurationSec, Raw: e.Fingerprint}), nil
		}
	}

	fp, err := Compute(ctx, path)
	if err != nil {
		return "", err
	}
	if fp == nil {
		return "", nil
	}

	if statErr == nil && p.cache != nil {
		p.cache.Put(CacheEntry{
			Path:        path,
			Size:        info.Size(),
			ModTimeUnix: info.ModTime().Unix(),
			DurationSec: fp.DurationSec,
			Fingerprint: fp.Raw,
		})
	}
	return Key(fp), nil
}

// Verify re-derives both files' full fingerprints (bypassing the
// coarse bucket key) and confirms they are really the same audio by
// Hamming distance, after a cheap duration pre-filter. Intended as an
// optional second pass over groups a contents_audio/fuzzy_block scan
// produced, since Key() trades precision for bucketability.
func (p *Provider) Verify(ctx context.Context, pathA, pathB string, durationAMs, durationBMs int, threshold float64) (bool, error) {
	if !DurationOK(durationAMs, durationBMs) {
		return false, nil
	}
	fpA, err := Compute(ctx, pathA)
	if err != nil {
		return false, err
	}
	fpB, err := Compute(ctx, pathB)
	if err != nil {
		return false, err
	}
	return Match(fpA, fpB, threshold), nil
}

// SaveCache flushes the cache to disk, if one was configured.
func (p *Provider) SaveCache() error {
	if p.cache == nil {
		return nil
	}
	return p.cache.Save()
}
