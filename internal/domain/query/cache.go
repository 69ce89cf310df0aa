package query

import (
	"fmt"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/rpggio/faultdesk/internal/domain/fault"
)

// DefaultCacheSize is used when a non-positive size is requested.
const DefaultCacheSize = 128

// Cache memoizes query and summary results for the latest snapshot version.
// It subscribes to the store and drops everything when the version moves.
type Cache struct {
	engine *Engine
	items  *lru.Cache[string, cached]

	mu      sync.Mutex
	version uint64
}

type cached struct {
	records []fault.Fault
	stats   Stats
}

// NewCache creates a cache holding at most size results.
func NewCache(engine *Engine, size int) (*Cache, error) {
	if size <= 0 {
		size = DefaultCacheSize
	}
	items, err := lru.New[string, cached](size)
	if err != nil {
		return nil, fmt.Errorf("creating query cache: %w", err)
	}
	return &Cache{engine: engine, items: items}, nil
}

// Observe purges cached results when a newer snapshot arrives.
func (c *Cache) Observe(snap fault.Snapshot) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if snap.Version != c.version {
		c.version = snap.Version
		c.items.Purge()
	}
}

// Query runs spec against snap, reusing a prior result for the same version.
func (c *Cache) Query(snap fault.Snapshot, spec Spec) ([]fault.Fault, error) {
	key := fmt.Sprintf("q|%d|%s", snap.Version, spec.key())
	if hit, ok := c.items.Get(key); ok {
		return cloneRecords(hit.records), nil
	}

	records, err := c.engine.Query(snap.Records, spec)
	if err != nil {
		return nil, err
	}
	c.store(snap.Version, key, cached{records: cloneRecords(records)})
	return records, nil
}

// Summarize returns the counters for snap. Entries are bucketed by calendar
// day so "today" rolls over.
func (c *Cache) Summarize(snap fault.Snapshot) Stats {
	day := c.engine.now().In(c.engine.location).Format("2006-01-02")
	key := fmt.Sprintf("s|%d|%s", snap.Version, day)
	if hit, ok := c.items.Get(key); ok {
		return hit.stats
	}

	stats := c.engine.Summarize(snap.Records)
	c.store(snap.Version, key, cached{stats: stats})
	return stats
}

// Len reports the number of cached results.
func (c *Cache) Len() int {
	return c.items.Len()
}

// store skips results computed from a snapshot older than the last observed one.
func (c *Cache) store(version uint64, key string, value cached) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if version < c.version {
		return
	}
	c.items.Add(key, value)
}

func cloneRecords(records []fault.Fault) []fault.Fault {
	out := make([]fault.Fault, len(records))
	for i, rec := range records {
		out[i] = rec.Clone()
	}
	return out
}
