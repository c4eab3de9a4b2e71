package fingerprint

import (
	"bytes"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/ulikunitz/xz"
)

// CacheEntry memoizes one file's fpcalc result, keyed against the file
// state that was true when it was computed — fingerprinting is the slow
// external call spec.md flags, not something to redo on every scan.
type CacheEntry struct {
	Path        string   `json:"path"`
	Size        int64    `json:"size"`
	ModTimeUnix int64    `json:"mod_time_unix"`
	DurationSec int      `json:"duration_sec"`
	Fingerprint []uint32 `json:"fingerprint"`
}

// Cache is a small on-disk memoization store, the direct generalization
// of the teacher's backend/duplicate_cache.go: same atomic
// temp-file-then-rename save, same per-root hashed file name, but xz-
// compressed on disk since fingerprints are large and numerous.
type Cache struct {
	path string

	mu      sync.Mutex
	entries map[string]CacheEntry
}

// OpenCache loads (or initializes empty) the fingerprint cache for a
// given scan root.
func OpenCache(root string) (*Cache, error) {
	path, err := cachePathForRoot(root)
	if err != nil {
		return nil, err
	}
	c := &Cache{path: path, entries: map[string]CacheEntry{}}
	if err := c.load(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Cache) load() error {
	data, err := os.ReadFile(c.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("fingerprint: read cache: %w", err)
	}

	r, err := xz.NewReader(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("fingerprint: decompress cache: %w", err)
	}
	raw, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("fingerprint: decompress cache: %w", err)
	}

	var entries map[string]CacheEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return fmt.Errorf("fingerprint: unmarshal cache: %w", err)
	}
	c.entries = entries
	return nil
}

// Get returns the cached entry for path, but only if size and modTime
// still match what was cached — any drift invalidates the entry rather
// than risk returning a stale fingerprint.
func (c *Cache) Get(path string, size int64, modTime time.Time) (CacheEntry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[path]
	if !ok || e.Size != size || e.ModTimeUnix != modTime.Unix() {
		return CacheEntry{}, false
	}
	return e, true
}

// Put stores or replaces an entry.
func (c *Cache) Put(e CacheEntry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[e.Path] = e
}

// Prune drops entries for paths that no longer exist on disk.
func (c *Cache) Prune(exists func(string) bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for path := range c.entries {
		if !exists(path) {
			delete(c.entries, path)
		}
	}
}

// Save writes the cache atomically: marshal to JSON, xz-compress,
// write to a temp file in the same directory, then rename over the
// real path so a reader never observes a partially written cache.
func (c *Cache) Save() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, err := json.Marshal(c.entries)
	if err != nil {
		return fmt.Errorf("fingerprint: marshal cache: %w", err)
	}

	var buf bytes.Buffer
	w, err := xz.NewWriter(&buf)
	if err != nil {
		return fmt.Errorf("fingerprint: compress cache: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("fingerprint: compress cache: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("fingerprint: compress cache: %w", err)
	}

	dir := filepath.Dir(c.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("fingerprint: create cache dir: %w", err)
	}

	tmp := c.path + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("fingerprint: write temp cache: %w", err)
	}
	if err := os.Rename(tmp, c.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("fingerprint: atomically save cache: %w", err)
	}
	return nil
}

func cachePathForRoot(root string) (string, error) {
	if root == "" {
		return "", fmt.Errorf("fingerprint: root path is required")
	}
	dir, err := os.UserCacheDir()
	if err != nil {
		dir = os.TempDir()
	}
	sum := sha1.Sum([]byte(root))
	hash := hex.EncodeToString(sum[:])
	return filepath.Join(dir, "dupescan", fmt.Sprintf("fingerprints_%s.json.xz", hash)), nil
}
