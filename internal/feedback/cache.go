package feedback

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"daytrack/internal/fsutil"
)

// Cache is a date-keyed feedback store backed by a single JSON file. Writes
// go through an atomic rename. A corrupt file is dropped and the cache starts
// empty rather than blocking feedback entirely.
type Cache struct {
	mu      sync.Mutex
	path    string
	entries map[string]Entry
}

// OpenCache loads the cache at path, creating parent directories. A missing
// or unreadable file yields an empty cache.
func OpenCache(path string) (*Cache, error) {
	if err := fsutil.EnsureDir(filepath.Dir(path)); err != nil {
		return nil, err
	}
	c := &Cache{path: path, entries: make(map[string]Entry)}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return c, nil
		}
		return nil, fmt.Errorf("feedback: read cache %s: %w", path, err)
	}
	if err := json.Unmarshal(data, &c.entries); err != nil {
		// Corrupt cache. Start over; the data is regenerable.
		c.entries = make(map[string]Entry)
	}
	return c, nil
}

// Get returns the entry for a date key, if present.
func (c *Cache) Get(date string) (Entry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[date]
	return e, ok
}

// Put stores an entry under a date key and persists the whole cache.
func (c *Cache) Put(date string, e Entry) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[date] = e
	data, err := json.MarshalIndent(c.entries, "", "  ")
	if err != nil {
		return fmt.Errorf("feedback: marshal cache: %w", err)
	}
	if err := fsutil.WriteFileAtomic(c.path, data, 0o644); err != nil {
		delete(c.entries, date)
		return err
	}
	return nil
}

// Dates returns the cached date keys, unordered.
func (c *Cache) Dates() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, 0, len(c.entries))
	for date := range c.entries {
		out = append(out, date)
	}
	return out
}
