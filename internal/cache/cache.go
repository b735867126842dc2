// Package cache provides optional on-disk caching of generation responses,
// so repeated runs against the same model and prompts skip the backend.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/klauspost/compress/gzip"
)

// Entry is one cached generation response. Latency is the original call's
// latency so replays report realistic timings.
type Entry struct {
	Text    string        `json:"text"`
	Latency time.Duration `json:"latency"`
}

// Cache stores gzip-compressed entries in a directory. An empty directory
// disables it: Get always misses and Put is a no-op.
type Cache struct {
	dir string
	mu  sync.Mutex
}

// New creates a cache instance rooted at dir.
func New(dir string) *Cache {
	return &Cache{dir: dir}
}

// Key derives the cache key for one trial from everything that affects the
// response: model, mode and the exact prompt text.
func Key(model, mode, prompt string) string {
	h := sha256.New()
	for _, part := range []string{model, mode, prompt} {
		// Length-prefix each part so ("ab","c") and ("a","bc") differ.
		fmt.Fprintf(h, "%d:%s", len(part), part)
	}
	return hex.EncodeToString(h.Sum(nil))
}

// Get retrieves a cached entry if present. Corrupt entries are treated as
// misses.
func (c *Cache) Get(key string) (*Entry, bool) {
	if c.dir == "" {
		return nil, false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	f, err := os.Open(c.entryPath(key))
	if err != nil {
		return nil, false
	}
	defer f.Close() //nolint:errcheck

	zr, err := gzip.NewReader(f)
	if err != nil {
		return nil, false
	}
	defer zr.Close() //nolint:errcheck

	data, err := io.ReadAll(zr)
	if err != nil {
		return nil, false
	}
	var entry Entry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, false
	}
	return &entry, true
}

// Put stores an entry under the key.
func (c *Cache) Put(key string, entry *Entry) error {
	if c.dir == "" {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := os.MkdirAll(c.dir, 0755); err != nil {
		return fmt.Errorf("cache: creating directory: %w", err)
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("cache: marshaling entry: %w", err)
	}

	f, err := os.Create(c.entryPath(key))
	if err != nil {
		return fmt.Errorf("cache: writing entry: %w", err)
	}
	zw := gzip.NewWriter(f)
	if _, err := zw.Write(data); err != nil {
		f.Close() //nolint:errcheck
		return fmt.Errorf("cache: compressing entry: %w", err)
	}
	if err := zw.Close(); err != nil {
		f.Close() //nolint:errcheck
		return fmt.Errorf("cache: compressing entry: %w", err)
	}
	return f.Close()
}

// Clear removes all cached entries. Refuses to delete a directory holding
// anything other than cache files.
func (c *Cache) Clear() error {
	if c.dir == "" {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	entries, err := os.ReadDir(c.dir)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("cache: reading directory: %w", err)
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".gz" {
			return fmt.Errorf("cache: %s contains non-cache files - refusing to delete", c.dir)
		}
	}
	return os.RemoveAll(c.dir)
}

func (c *Cache) entryPath(key string) string {
	return filepath.Join(c.dir, key+".json.gz")
}
