package api

import (
	"sync"

	"github.com/lifescore/lifescore/internal/intake"
)

// ReportCache is a thread-safe LRU cache for rendered reports. Stored
// submissions never change, so entries need no invalidation.
type ReportCache struct {
	mu      sync.Mutex
	maxSize int
	entries map[string]*cacheEntry
	order   []string // oldest first
}

type cacheEntry struct {
	file *intake.ReportFile
}

// NewReportCache creates a cache with the given maximum number of entries.
// If maxSize <= 0, it defaults to 128.
func NewReportCache(maxSize int) *ReportCache {
	if maxSize <= 0 {
		maxSize = 128
	}
	return &ReportCache{
		maxSize: maxSize,
		entries: make(map[string]*cacheEntry),
	}
}

func cacheKey(submissionID, format string) string {
	return submissionID + ":" + format
}

// Get retrieves a report from the cache, or nil if not found.
func (c *ReportCache) Get(submissionID, format string) *intake.ReportFile {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := cacheKey(submissionID, format)
	entry, ok := c.entries[key]
	if !ok {
		return nil
	}

	// Move to end (most recently used)
	c.moveToEnd(key)
	return entry.file
}

// Put adds a report to the cache, evicting the oldest if full.
func (c *ReportCache) Put(submissionID, format string, file *intake.ReportFile) {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := cacheKey(submissionID, format)
	if _, ok := c.entries[key]; ok {
		c.entries[key] = &cacheEntry{file: file}
		c.moveToEnd(key)
		return
	}

	// Evict oldest if at capacity
	for len(c.entries) >= c.maxSize && len(c.order) > 0 {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.entries, oldest)
	}

	c.entries[key] = &cacheEntry{file: file}
	c.order = append(c.order, key)
}

// Len returns the number of cached reports.
func (c *ReportCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *ReportCache) moveToEnd(key string) {
	for i, k := range c.order {
		if k == key {
			c.order = append(c.order[:i], c.order[i+1:]...)
			c.order = append(c.order, key)
			return
		}
	}
}
