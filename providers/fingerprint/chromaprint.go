// Package fingerprint implements the fingerprint provider collaborator
// spec.md §6 describes (file -> opaque key) for the fuzzy_block,
// exif_timestamp and contents_audio scan types, backed by chromaprint
// (via the external fpcalc binary) for audio. Adapted from the
// teacher's backend/chromaprint.go.
package fingerprint

import (
	"context"
	"fmt"
	"math/bits"
	"os/exec"
	"strconv"
	"strings"
	"time"
)

// Fingerprint holds fpcalc's raw output: a duration and a sequence of
// 32-bit subfingerprints suitable for Hamming-distance comparison.
type Fingerprint struct {
	DurationSec int
	Raw         []uint32
}

const defaultFpcalcLengthSec = 120

// Timeout bounds a single fpcalc invocation; large files can otherwise
// stall a scan indefinitely.
var Timeout = 30 * time.Second

// Compute runs fpcalc on path. A missing fpcalc binary, an unsupported
// format, or any other command failure returns (nil, nil): the caller
// treats "no fingerprint available" as a file-level condition to
// swallow, not an error, per spec.md §7.
func Compute(ctx context.Context, path string) (*Fingerprint, error) {
	ctx, cancel := context.WithTimeout(ctx, Timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "fpcalc", "-raw", "-length", strconv.Itoa(defaultFpcalcLengthSec), path)
	out, err := cmd.Output()
	if err != nil {
		if _, ok := err.(*exec.ExitError); ok {
			return nil, nil
		}
		if ctx.Err() != nil {
			return nil, fmt.Errorf("fingerprint: %s: %w", path, ctx.Err())
		}
		return nil, nil
	}

	fp := parseFpcalcOutput(string(out))
	if fp == nil || len(fp.Raw) == 0 {
		return nil, nil
	}
	return fp, nil
}

func parseFpcalcOutput(out string) *Fingerprint {
	fp := &Fingerprint{}
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		line = strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(line, "DURATION="):
			s := strings.TrimPrefix(line, "DURATION=")
			if idx := strings.Index(s, "."); idx >= 0 {
				s = s[:idx]
			}
			fp.DurationSec, _ = strconv.Atoi(s)
		case strings.HasPrefix(line, "FINGERPRINT="):
			s := strings.TrimPrefix(line, "FINGERPRINT=")
			parts := strings.FieldsFunc(s, func(r rune) bool { return r == ' ' || r == ',' })
			raw := make([]uint32, 0, len(parts))
			for _, p := range parts {
				p = strings.TrimSpace(p)
				if p == "" {
					continue
				}
				if u, err := strconv.ParseUint(p, 10, 32); err == nil {
					raw = append(raw, uint32(u))
				}
			}
			fp.Raw = raw
		}
	}
	return fp
}

// Match reports whether two fingerprints are close enough (by average
// Hamming bit-error rate, over the shorter of the two) to be the same
// underlying audio. threshold=0.15 tolerates re-encodes at a different
// bitrate; different tracks normally land well above 0.3.
func Match(a, b *Fingerprint, threshold float64) bool {
	if a == nil || b == nil || len(a.Raw) == 0 || len(b.Raw) == 0 {
		return false
	}
	n := len(a.Raw)
	if len(b.Raw) < n {
		n = len(b.Raw)
	}
	var distance int
	for i := 0; i < n; i++ {
		distance += bits.OnesCount32(a.Raw[i] ^ b.Raw[i])
	}
	return float64(distance)/float64(32*n) < threshold
}

// DurationOK is a cheap pre-filter run before the (more expensive)
// fingerprint comparison: two durations more than 5 seconds or 2%
// apart, whichever is larger, can't be the same track.
func DurationOK(aMs, bMs int) bool {
	if aMs <= 0 || bMs <= 0 {
		return true
	}
	diff := aMs - bMs
	if diff < 0 {
		diff = -diff
	}
	maxMs := 5000
	larger := aMs
	if bMs > larger {
		larger = bMs
	}
	if pct := int(float64(larger) * 0.02); pct > maxMs {
		maxMs = pct
	}
	return diff <= maxMs
}

// Key derives a coarse, tolerance-absorbing bucket key from a
// fingerprint for use as an engine.File.FingerprintKey. Re-encodes of
// the same source audio tend to agree on the high-order bits of their
// early subfingerprints and disagree on the low-order ones, so dropping
// the bottom 4 bits of the first 8 subfingerprints groups near-
// duplicates into the same content-matcher bucket without needing full
// Hamming-distance comparison at match time. Fine-grained verification
// still goes through Match.
func Key(fp *Fingerprint) string {
	if fp == nil || len(fp.Raw) == 0 {
		return ""
	}
	n := len(fp.Raw)
	if n > 8 {
		n = 8
	}
	var b strings.Builder
	for i := 0; i < n; i++ {
		fmt.Fprintf(&b, "%x-", fp.Raw[i]>>4)
	}
	return b.String()
}
