// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package cacheutil

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/tfctl/csvdiff/internal/log"
)

// Dir resolves the base cache directory.
// Precedence:
//  1. CSVDIFF_CACHE_DIR, if set and non-empty
//  2. os.UserCacheDir()/csvdiff
//
// Returns ("", false) if a base cannot be resolved (treat as disabled).
func Dir() (string, bool) {
	if c, ok := os.LookupEnv("CSVDIFF_CACHE_DIR"); ok && c != "" {
		return c, true
	}
	if dir, err := os.UserCacheDir(); err == nil && dir != "" {
		return filepath.Join(dir, "csvdiff"), true
	}
	return "", false
}

// Enabled returns true unless CSVDIFF_CACHE explicitly disables it ("0"/"false").
func Enabled() bool {
	enabled, _ := os.LookupEnv("CSVDIFF_CACHE")
	return enabled == "" || (enabled != "0" && enabled != "false")
}

// Cache stores immutable snapshot bodies on disk. Entries are named by the
// sha256 of their clear-text key and sharded by the first byte of it.
type Cache struct {
	Base string
}

// Open returns the cache rooted at Dir(), or false when caching is disabled
// or no base directory can be resolved.
func Open() (*Cache, bool) {
	if !Enabled() {
		log.Debug("cache disabled")
		return nil, false
	}
	base, ok := Dir()
	if !ok {
		return nil, false
	}
	return &Cache{Base: base}, true
}

// Path returns where the entry for key lives.
func (c *Cache) Path(key string) string {
	h := sha256.Sum256([]byte(key))
	name := hex.EncodeToString(h[:])
	return filepath.Join(c.Base, name[:2], name)
}

// Get returns the entry for key if present.
func (c *Cache) Get(key string) ([]byte, bool) {
	data, err := os.ReadFile(c.Path(key))
	if err != nil {
		return nil, false
	}
	log.Debugf("cache hit: key=%s", key)
	return data, true
}

// Put stores data under key, creating directories as needed.
func (c *Cache) Put(key string, data []byte) error {
	p := c.Path(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil { //nolint:mnd
		return fmt.Errorf("failed to create cache directory: %w", err)
	}
	if err := os.WriteFile(p, data, 0o600); err != nil { //nolint:mnd
		return fmt.Errorf("failed to write to cache: %w", err)
	}
	log.Debugf("cache write: key=%s", key)
	return nil
}

// Purge removes entries older than maxAge and returns how many it removed.
// A non-positive maxAge disables purging.
func (c *Cache) Purge(maxAge time.Duration) (int, error) {
	if maxAge <= 0 {
		log.Debug("cache cleaning disabled")
		return 0, nil
	}

	removed := 0
	err := filepath.Walk(c.Base, func(path string, info os.FileInfo, walkErr error) error {
		if walkErr != nil {
			if os.IsNotExist(walkErr) {
				return nil
			}
			return walkErr
		}
		if info == nil || info.IsDir() || time.Since(info.ModTime()) <= maxAge {
			return nil
		}
		if err := os.Remove(path); err != nil {
			log.WithError(err).Warnf("failed to remove cache file %s", path)
			return nil
		}
		log.Debugf("removed cache file %s", path)
		removed++
		return nil
	})
	if err != nil {
		return removed, fmt.Errorf("failed to purge cache: %w", err)
	}
	return removed, nil
}
