package sim

import (
	"fmt"

	"github.com/bluele/gcache"
	ristretto "github.com/dgraph-io/ristretto/v2"
	arc "github.com/hashicorp/golang-lru/arc/v2"
	lru "github.com/hashicorp/golang-lru/v2"
)

// Constructor names a cache factory for comparison runs.
type Constructor struct {
	Name string
	New  func(capacity int) (Cache, error)
}

// Baselines returns the stock schemes the policy is compared against.
func Baselines() []Constructor {
	return []Constructor{
		{Name: "lru", New: NewLRU},
		{Name: "arc", New: NewARC},
		{Name: "lfu", New: NewLFU},
		{Name: "tinylfu", New: NewTinyLFU},
	}
}

// lruCache wraps hashicorp's plain LRU as the recency baseline.
type lruCache struct {
	inner *lru.Cache[uint64, struct{}]
}

// NewLRU returns a least-recently-used baseline.
func NewLRU(capacity int) (Cache, error) {
	inner, err := lru.New[uint64, struct{}](capacity)
	if err != nil {
		return nil, fmt.Errorf("sim: lru: %w", err)
	}
	return &lruCache{inner: inner}, nil
}

func (c *lruCache) Name() string { return "lru" }

func (c *lruCache) Touch(page uint64) bool {
	if _, ok := c.inner.Get(page); ok {
		return true
	}
	c.inner.Add(page, struct{}{})
	return false
}

// arcCache wraps hashicorp's adaptive replacement cache.
type arcCache struct {
	inner *arc.ARCCache[uint64, struct{}]
}

// NewARC returns an adaptive-replacement baseline.
func NewARC(capacity int) (Cache, error) {
	inner, err := arc.NewARC[uint64, struct{}](capacity)
	if err != nil {
		return nil, fmt.Errorf("sim: arc: %w", err)
	}
	return &arcCache{inner: inner}, nil
}

func (c *arcCache) Name() string { return "arc" }

func (c *arcCache) Touch(page uint64) bool {
	if _, ok := c.inner.Get(page); ok {
		return true
	}
	c.inner.Add(page, struct{}{})
	return false
}

// lfuCache wraps gcache's LFU mode as the frequency baseline.
type lfuCache struct {
	inner gcache.Cache
}

// NewLFU returns a least-frequently-used baseline.
func NewLFU(capacity int) (Cache, error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("sim: lfu: capacity must be positive, got %d", capacity)
	}
	return &lfuCache{inner: gcache.New(capacity).LFU().Build()}, nil
}

func (c *lfuCache) Name() string { return "lfu" }

func (c *lfuCache) Touch(page uint64) bool {
	if _, err := c.inner.Get(page); err == nil {
		return true
	}
	_ = c.inner.Set(page, struct{}{})
	return false
}

// tinyLFUCache wraps ristretto, an admission-filtered cache. Writes
// flush synchronously so replays stay reproducible.
type tinyLFUCache struct {
	inner *ristretto.Cache[uint64, struct{}]
}

// NewTinyLFU returns a TinyLFU admission baseline.
func NewTinyLFU(capacity int) (Cache, error) {
	inner, err := ristretto.NewCache(&ristretto.Config[uint64, struct{}]{
		NumCounters: int64(capacity) * 10,
		MaxCost:     int64(capacity),
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("sim: tinylfu: %w", err)
	}
	return &tinyLFUCache{inner: inner}, nil
}

func (c *tinyLFUCache) Name() string { return "tinylfu" }

func (c *tinyLFUCache) Touch(page uint64) bool {
	if _, ok := c.inner.Get(page); ok {
		return true
	}
	c.inner.Set(page, struct{}{}, 1)
	c.inner.Wait()
	return false
}

// Close releases ristretto's background goroutines.
func (c *tinyLFUCache) Close() error {
	c.inner.Close()
	return nil
}
