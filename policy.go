package cacheext

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
)

// Policy tracks page-cache pages belonging to watched files in two
// per-group segments and nominates eviction victims exclusively from the
// cold one. A page enters the cold segment on first touch and moves to
// the tail of the hot segment on any repeat touch, so a single sweep over
// a large file cannot displace pages that have proven reuse.
//
// One Policy instance serves any number of groups; each group gets its
// own cold/hot pair from Initialize.
type Policy struct {
	registry  ListRegistry
	watchlist Watchlist

	log     *slog.Logger
	metrics *Metrics
	id      string

	// groups maps each initialized group to its segment pair. Guarded by
	// mu because Initialize writes while the hooks read; the hooks
	// themselves never block on registry state.
	mu     sync.RWMutex
	groups map[GroupID]segments
}

// New creates a Policy that stores segment membership in registry and
// consults watchlist as its relevance oracle. Both collaborators are
// required.
func New(registry ListRegistry, watchlist Watchlist, opts ...Option) (*Policy, error) {
	if registry == nil {
		return nil, &PolicyError{Op: "new", Err: ErrMissingRegistry}
	}
	if watchlist == nil {
		return nil, &PolicyError{Op: "new", Err: ErrMissingWatchlist}
	}

	options := Options{}
	for _, opt := range opts {
		opt(&options)
	}
	if options.Logger == nil {
		options.Logger = nopLogger()
	}
	if options.InstanceID == "" {
		options.InstanceID = newInstanceID()
	}

	return &Policy{
		registry:  registry,
		watchlist: watchlist,
		log:       options.Logger.With(slog.String("policy", options.InstanceID)),
		metrics:   options.Metrics,
		id:        options.InstanceID,
		groups:    make(map[GroupID]segments),
	}, nil
}

// ID returns the instance identifier attached to this policy's log
// records.
func (p *Policy) ID() string { return p.id }

// Initialize provisions the cold and hot segments for group. It must
// complete successfully before any other hook runs for that group. On
// failure no usable state remains: a list created before the failure is
// abandoned to the registry and the group stays uninitialized, so the
// host must keep routing the group to its fallback policy. Initializing
// a group twice fails with ErrGroupExists.
//
// Initialize is the only hook that may block.
func (p *Policy) Initialize(ctx context.Context, group GroupID) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, ok := p.groups[group]; ok {
		return &PolicyError{Op: "initialize", Group: group, Err: ErrGroupExists}
	}

	cold, err := p.newSegment(ctx, group)
	if err != nil {
		p.log.ErrorContext(ctx, "failed to create segment lists",
			slog.String("group", group.String()),
			slog.String("segment", "cold"),
			slog.Any("error", err))
		return &PolicyError{Op: "initialize", Group: group, Err: err}
	}

	hot, err := p.newSegment(ctx, group)
	if err != nil {
		// There is no way to hand the cold list back; it stays behind
		// in the registry, empty and unused.
		p.log.ErrorContext(ctx, "failed to create segment lists",
			slog.String("group", group.String()),
			slog.String("segment", "hot"),
			slog.Uint64("abandoned_cold", uint64(cold)),
			slog.Any("error", err))
		return &PolicyError{Op: "initialize", Group: group, Err: err}
	}

	p.groups[group] = segments{cold: cold, hot: hot}

	p.log.InfoContext(ctx, "created segment lists",
		slog.String("group", group.String()),
		slog.Uint64("cold", uint64(cold)),
		slog.Uint64("hot", uint64(hot)))

	return nil
}

// newSegment allocates one list for group, folding context cancellation
// and the reserved zero handle into the error path.
func (p *Policy) newSegment(ctx context.Context, group GroupID) (ListID, error) {
	if err := ctx.Err(); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrInitFailed, err)
	}

	id, err := p.registry.NewList(group)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrInitFailed, err)
	}
	if !id.Valid() {
		return 0, fmt.Errorf("%w: registry returned reserved zero handle", ErrInitFailed)
	}
	return id, nil
}

// OnPageAdded records one access to page on behalf of group. The first
// touch of a relevant page admits it to the tail of the group's cold
// segment; any later touch moves it to the tail of the hot segment.
// Accesses to nil, anonymous, or unwatched pages, and to groups never
// initialized, are ignored.
//
// Failures are absorbed: the page is left untracked and covered by the
// host's fallback policy until its next touch.
func (p *Policy) OnPageAdded(group GroupID, page Page) {
	if page == nil {
		p.metrics.recordIgnored()
		return
	}

	file, backed := page.File()
	if !backed {
		p.metrics.recordIgnored()
		return
	}
	if !p.watchlist.Contains(file) {
		p.metrics.recordIgnored()
		return
	}

	p.mu.RLock()
	segs, ok := p.groups[group]
	p.mu.RUnlock()
	if !ok {
		p.metrics.recordIgnored()
		p.log.Debug("page access for unknown group",
			slog.String("group", group.String()),
			slog.Uint64("file", uint64(file)))
		return
	}

	// Unlink from whichever segment holds the page. Success means this
	// is a repeat touch.
	tracked := p.registry.Remove(page)

	if tracked {
		if err := p.registry.Append(segs.hot, page); err != nil {
			p.metrics.recordAppendFailure()
			p.log.Warn("failed to re-add page to hot list",
				slog.String("group", group.String()),
				slog.Uint64("list", uint64(segs.hot)),
				slog.Uint64("file", uint64(file)),
				slog.Any("error", err))
			return
		}
		p.metrics.recordPromotion()
		return
	}

	if err := p.registry.Append(segs.cold, page); err != nil {
		p.metrics.recordAppendFailure()
		p.log.Warn("failed to add page to cold list",
			slog.String("group", group.String()),
			slog.Uint64("list", uint64(segs.cold)),
			slog.Uint64("file", uint64(file)),
			slog.Any("error", err))
		return
	}
	p.metrics.recordAdmission()
}

// SelectVictims nominates eviction candidates for group under memory
// pressure. Only the group's cold segment is scanned, oldest first; hot
// pages survive the pass untouched regardless of pressure. Pages that
// are mid-fill, off the host's reclaim lists, dirty, or under writeback
// are passed over. Every remaining page is offered to ectx until the
// scan reaches the tail or ectx declines further victims.
//
// Selected pages stay on the cold segment until the host confirms the
// eviction through NotifyEvicted. A failed scan, like an unknown group,
// yields no victims and never escalates an error to the host.
func (p *Policy) SelectVictims(ectx EvictionContext, group GroupID) {
	if ectx == nil {
		return
	}

	p.mu.RLock()
	segs, ok := p.groups[group]
	p.mu.RUnlock()
	if !ok {
		p.log.Debug("victim scan for unknown group",
			slog.String("group", group.String()))
		return
	}

	var stats scanStats
	err := p.registry.Iterate(group, segs.cold, func(_ int, page Page) IterVerdict {
		stats.scanned++

		if !page.UpToDate() || !page.OnList() {
			stats.skippedStale++
			return IterContinue
		}
		if page.Dirty() {
			stats.skippedDirty++
			return IterContinue
		}
		if page.Writeback() {
			stats.skippedWriteback++
			return IterContinue
		}

		if !ectx.Select(page) {
			return IterStop
		}
		stats.victims++
		return IterSelect
	})
	if err != nil {
		p.metrics.recordIterateFailure()
		p.log.Warn("failed to iterate cold list",
			slog.String("group", group.String()),
			slog.Uint64("list", uint64(segs.cold)),
			slog.Any("error", err))
		return
	}

	p.metrics.recordScan(stats)
}

// NotifyEvicted informs the policy that the host evicted page through any
// path, not only via a SelectVictims nomination. The page is unlinked
// from whichever segment still tracks it. Untracked pages are a normal
// no-op, so the call is idempotent and safe for pages the policy never
// admitted.
func (p *Policy) NotifyEvicted(page Page) {
	if page == nil {
		return
	}

	if p.registry.Remove(page) {
		p.metrics.recordCleanup()
		p.log.Debug("removed evicted page from segment", pageAttrs(page)...)
	}
}
