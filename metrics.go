package cacheext

import (
	"sync"
	"time"
)

// Metrics collects operational counters for a policy instance. All methods
// are safe for concurrent use, and a nil *Metrics records nothing, so the
// hooks pay for instrumentation only when a host asks for it via
// WithMetrics.
type Metrics struct {
	mu sync.RWMutex

	// Admission and promotion outcomes
	admitted int64 // first-touch appends to a cold segment
	promoted int64 // re-touch moves to a hot segment
	ignored  int64 // events dropped by the relevance guards

	// Absorbed registry failures
	appendFailures  int64
	iterateFailures int64

	// Eviction scan activity
	scans   int64 // scans that reached a cold segment
	scanned int64 // pages visited across all scans
	victims int64 // pages handed to an eviction context

	// Pages passed over by the victim predicate
	skippedStale     int64 // not up to date, or detached from its list
	skippedDirty     int64
	skippedWriteback int64

	// Reclaim cleanups
	cleanups int64 // eviction notices that found a tracked page

	startTime    time.Time
	lastScanTime time.Time
}

// NewMetrics creates a Metrics instance ready for use.
func NewMetrics() *Metrics {
	now := time.Now()
	return &Metrics{
		startTime:    now,
		lastScanTime: now,
	}
}

// scanStats accumulates per-scan counts so a scan takes one lock
// acquisition instead of one per page.
type scanStats struct {
	scanned          int64
	victims          int64
	skippedStale     int64
	skippedDirty     int64
	skippedWriteback int64
}

func (m *Metrics) recordAdmission() {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.admitted++
}

func (m *Metrics) recordPromotion() {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.promoted++
}

func (m *Metrics) recordIgnored() {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ignored++
}

func (m *Metrics) recordAppendFailure() {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.appendFailures++
}

func (m *Metrics) recordIterateFailure() {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.iterateFailures++
}

func (m *Metrics) recordScan(s scanStats) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	m.scans++
	m.scanned += s.scanned
	m.victims += s.victims
	m.skippedStale += s.skippedStale
	m.skippedDirty += s.skippedDirty
	m.skippedWriteback += s.skippedWriteback
	m.lastScanTime = time.Now()
}

func (m *Metrics) recordCleanup() {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cleanups++
}

// Snapshot returns a point-in-time view of the counters. It is safe to
// call on a nil receiver, which yields a zero snapshot.
func (m *Metrics) Snapshot() MetricsSnapshot {
	if m == nil {
		return MetricsSnapshot{}
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	var promotionRate float64
	if touched := m.admitted + m.promoted; touched > 0 {
		promotionRate = float64(m.promoted) / float64(touched)
	}

	var selectionRate float64
	if m.scanned > 0 {
		selectionRate = float64(m.victims) / float64(m.scanned)
	}

	return MetricsSnapshot{
		Admitted:      m.admitted,
		Promoted:      m.promoted,
		Ignored:       m.ignored,
		PromotionRate: promotionRate,

		AppendFailures:  m.appendFailures,
		IterateFailures: m.iterateFailures,

		Scans:         m.scans,
		Scanned:       m.scanned,
		Victims:       m.victims,
		SelectionRate: selectionRate,

		SkippedStale:     m.skippedStale,
		SkippedDirty:     m.skippedDirty,
		SkippedWriteback: m.skippedWriteback,

		Cleanups: m.cleanups,

		Uptime:            time.Since(m.startTime),
		TimeSinceLastScan: time.Since(m.lastScanTime),
	}
}

// Reset clears all counters and restarts the uptime clock.
func (m *Metrics) Reset() {
	if m == nil {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()

	m.admitted = 0
	m.promoted = 0
	m.ignored = 0
	m.appendFailures = 0
	m.iterateFailures = 0
	m.scans = 0
	m.scanned = 0
	m.victims = 0
	m.skippedStale = 0
	m.skippedDirty = 0
	m.skippedWriteback = 0
	m.cleanups = 0
	m.startTime = now
	m.lastScanTime = now
}

// MetricsSnapshot provides a point-in-time view of policy metrics.
type MetricsSnapshot struct {
	// Admission and promotion outcomes
	Admitted      int64   `json:"admitted"`
	Promoted      int64   `json:"promoted"`
	Ignored       int64   `json:"ignored"`
	PromotionRate float64 `json:"promotion_rate"`

	// Absorbed registry failures
	AppendFailures  int64 `json:"append_failures"`
	IterateFailures int64 `json:"iterate_failures"`

	// Eviction scan activity
	Scans         int64   `json:"scans"`
	Scanned       int64   `json:"scanned"`
	Victims       int64   `json:"victims"`
	SelectionRate float64 `json:"selection_rate"`

	// Pages passed over by the victim predicate
	SkippedStale     int64 `json:"skipped_stale"`
	SkippedDirty     int64 `json:"skipped_dirty"`
	SkippedWriteback int64 `json:"skipped_writeback"`

	// Reclaim cleanups
	Cleanups int64 `json:"cleanups"`

	// Time-based metrics
	Uptime            time.Duration `json:"uptime"`
	TimeSinceLastScan time.Duration `json:"time_since_last_scan"`
}
