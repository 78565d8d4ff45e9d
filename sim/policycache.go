package sim

import (
	"context"
	"fmt"

	cacheext "github.com/bennyrubin/cache-ext"
	"github.com/bennyrubin/cache-ext/registry"
)

// watchedFile backs every simulated page. The simulator models one large
// watched file, so every access is relevant to the policy.
const watchedFile cacheext.FileID = 1

const simGroup cacheext.GroupID = "sim"

// PolicyCache adapts the two-segment policy into the Cache surface. It
// plays the host role: it owns residency, asks the policy for victims
// when full, falls back to admission order when the policy offers none,
// and reports every physical eviction back through NotifyEvicted.
type PolicyCache struct {
	policy  *cacheext.Policy
	metrics *cacheext.Metrics

	capacity int
	batch    int

	resident map[uint64]*simPage
	fifo     []*simPage
}

// NewPolicyCache builds a policy-backed cache over an in-memory registry
// with a single watched file covering every simulated page.
func NewPolicyCache(cfg Config) (*PolicyCache, error) {
	if cfg.Capacity <= 0 {
		return nil, fmt.Errorf("sim: capacity must be positive, got %d", cfg.Capacity)
	}

	metrics := cacheext.NewMetrics()
	policy, err := cacheext.New(registry.NewMemory(), singleFile(watchedFile),
		cacheext.WithMetrics(metrics))
	if err != nil {
		return nil, err
	}
	if err := policy.Initialize(context.Background(), simGroup); err != nil {
		return nil, err
	}

	return &PolicyCache{
		policy:   policy,
		metrics:  metrics,
		capacity: cfg.Capacity,
		batch:    max(cfg.ReclaimBatch, 1),
		resident: make(map[uint64]*simPage, cfg.Capacity),
	}, nil
}

func (c *PolicyCache) Name() string { return "cacheext" }

// Len reports current residency.
func (c *PolicyCache) Len() int { return len(c.resident) }

// Metrics exposes the underlying policy counters.
func (c *PolicyCache) Metrics() *cacheext.Metrics { return c.metrics }

// Touch records one access. A hit re-notifies the policy so reuse
// promotes the page; a miss reclaims as needed, then admits a fresh
// handle.
func (c *PolicyCache) Touch(page uint64) bool {
	if handle, ok := c.resident[page]; ok {
		c.policy.OnPageAdded(simGroup, handle)
		return true
	}

	for len(c.resident) >= c.capacity {
		c.reclaim()
	}

	handle := &simPage{file: watchedFile, num: page}
	c.resident[page] = handle
	c.fifo = append(c.fifo, handle)
	c.policy.OnPageAdded(simGroup, handle)
	return false
}

// reclaim runs one eviction pass: up to batch policy victims, or the
// oldest admitted page when the policy offers none.
func (c *PolicyCache) reclaim() {
	victims := &victimSet{limit: c.batch}
	c.policy.SelectVictims(victims, simGroup)
	if len(victims.pages) == 0 {
		c.evictOldest()
		return
	}
	for _, page := range victims.pages {
		c.evict(page.(*simPage))
	}
}

func (c *PolicyCache) evict(handle *simPage) {
	if current, ok := c.resident[handle.num]; !ok || current != handle {
		return
	}
	delete(c.resident, handle.num)
	c.policy.NotifyEvicted(handle)
}

// evictOldest drops the earliest admitted page still resident, the host
// falling back to its default order. Queue entries whose handle has been
// superseded are skipped.
func (c *PolicyCache) evictOldest() {
	for len(c.fifo) > 0 {
		handle := c.fifo[0]
		c.fifo = c.fifo[1:]
		if current, ok := c.resident[handle.num]; ok && current == handle {
			delete(c.resident, handle.num)
			c.policy.NotifyEvicted(handle)
			return
		}
	}
}

// simPage is the page handle the simulator lends to the policy. A fresh
// handle backs every admission, so a page returning after eviction is
// new to the policy the way a re-faulted folio is new to the kernel.
// Simulated pages are always clean, up to date, and on-list.
type simPage struct {
	file cacheext.FileID
	num  uint64
}

func (p *simPage) File() (cacheext.FileID, bool) { return p.file, true }
func (p *simPage) UpToDate() bool                { return true }
func (p *simPage) OnList() bool                  { return true }
func (p *simPage) Dirty() bool                   { return false }
func (p *simPage) Writeback() bool               { return false }

// singleFile is a Watchlist holding exactly one file.
type singleFile cacheext.FileID

func (s singleFile) Contains(file cacheext.FileID) bool {
	return cacheext.FileID(s) == file
}

// victimSet collects up to limit victims for one reclaim pass.
type victimSet struct {
	limit int
	pages []cacheext.Page
}

func (v *victimSet) Select(page cacheext.Page) bool {
	if len(v.pages) >= v.limit {
		return false
	}
	v.pages = append(v.pages, page)
	return true
}
