// Package portfolio validates applicant portfolio documents with the
// remote validator assistant and caches accepted results by content hash
// so re-uploads of the same document skip the remote round trip.
package portfolio

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"
)

const cacheFileName = "portfolio_cache.json"

// cacheEntry is the persisted shape of one validated portfolio.
type cacheEntry struct {
	ValidationResult Result `json:"validation_result"`
	FilePath         string `json:"file_path"`
	LastAccessed     int64  `json:"last_accessed"`
}

// Cache is a JSON-file backed map from portfolio content hash to its
// validation result. Entries untouched for longer than maxAge are removed
// by Sweep.
type Cache struct {
	path   string
	maxAge time.Duration
	logger *slog.Logger

	mu      sync.Mutex
	entries map[string]cacheEntry
}

// NewCache opens (or initializes) the cache file under dir. A corrupt or
// missing cache file starts the cache empty rather than failing.
func NewCache(dir string, maxAge time.Duration, logger *slog.Logger) (*Cache, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	c := &Cache{
		path:    filepath.Join(dir, cacheFileName),
		maxAge:  maxAge,
		logger:  logger,
		entries: make(map[string]cacheEntry),
	}

	data, err := os.ReadFile(c.path)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Error("failed to read portfolio cache", "path", c.path, "error", err)
		}
		return c, nil
	}
	if err := json.Unmarshal(data, &c.entries); err != nil {
		logger.Error("failed to parse portfolio cache, starting empty",
			"path", c.path, "error", err)
		c.entries = make(map[string]cacheEntry)
		return c, nil
	}
	logger.Debug("loaded cached portfolios", "count", len(c.entries))
	return c, nil
}

// Get returns the cached validation result for hash, refreshing its
// last-accessed time on a hit.
func (c *Cache) Get(hash string) (Result, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[hash]
	if !ok {
		return Result{}, false
	}
	entry.LastAccessed = time.Now().Unix()
	c.entries[hash] = entry
	c.save()
	return entry.ValidationResult, true
}

// Put stores the validation result of the file at path under hash.
func (c *Cache) Put(hash, path string, result Result) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[hash] = cacheEntry{
		ValidationResult: result,
		FilePath:         path,
		LastAccessed:     time.Now().Unix(),
	}
	c.save()
}

// Sweep drops entries whose last access is older than the cache max age.
func (c *Cache) Sweep() {
	c.mu.Lock()
	defer c.mu.Unlock()

	cutoff := time.Now().Add(-c.maxAge).Unix()
	removed := 0
	for hash, entry := range c.entries {
		if entry.LastAccessed < cutoff {
			delete(c.entries, hash)
			removed++
		}
	}
	if removed > 0 {
		c.logger.Info("swept stale portfolio cache entries", "removed", removed)
	}
	c.save()
}

// save writes the cache file; callers hold the mutex.
func (c *Cache) save() {
	data, err := json.Marshal(c.entries)
	if err != nil {
		c.logger.Error("failed to encode portfolio cache", "error", err)
		return
	}
	if err := os.WriteFile(c.path, data, 0o600); err != nil {
		c.logger.Error("failed to write portfolio cache", "path", c.path, "error", err)
	}
}

// hashFile computes the hex SHA-256 digest of the file at path, reading in
// chunks so large portfolios do not load fully into memory.
func hashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open portfolio file: %w", err)
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("failed to hash portfolio file: %w", err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
