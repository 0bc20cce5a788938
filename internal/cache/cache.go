// Package cache is a small TTL'd disk cache for fetched reference data.
package cache

import (
	"os"
	"path/filepath"
	"time"
)

const maxAge = 24 * time.Hour

var cacheDir = "data"

func init() {
	if dir := os.Getenv("SEC_DATA_DIR"); dir != "" {
		cacheDir = dir
	}
}

// Read returns the cached body for name if it exists and is fresh.
func Read(name string) ([]byte, bool) {
	path := filepath.Join(cacheDir, name)
	info, err := os.Stat(path)
	if err != nil || time.Since(info.ModTime()) > maxAge {
		return nil, false
	}
	body, err := os.ReadFile(path)
	if err != nil {
		return nil, false
	}
	return body, true
}

// Write stores a body under name; failures are ignored, the cache is an
// optimization only.
func Write(name string, body []byte) error {
	if err := os.MkdirAll(cacheDir, 0755); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(cacheDir, name), body, 0600)
}
