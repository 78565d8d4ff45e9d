// Package cacheext implements a pluggable page-cache eviction policy that
// shields frequently re-used pages of selected files from eviction.
//
// The policy plugs into a host cache manager as a linked-in decision
// module. The host keeps ownership of pages, physical eviction, and the
// list storage; the policy only decides which pages to track and which to
// nominate as eviction victims.
//
// # Two-Segment Scheme
//
// For every memory-resource-group the policy maintains two ordered
// segments inside the host's ListRegistry:
//
//   - cold: pages touched exactly once since they were last admitted
//   - hot: pages with at least one repeat touch
//
// A relevant page enters the tail of cold on first touch. Any later touch
// moves it to the tail of hot, wherever it currently sits. Under memory
// pressure only cold is scanned for victims, oldest first, so one
// sequential sweep over a large file can displace at most other
// single-touch pages while the proven working set in hot survives.
//
// Only pages backed by files on the host's Watchlist are tracked at all.
// Anonymous pages and unwatched files are ignored and remain covered by
// the host's default reclaim policy.
//
// # Lifecycle
//
// The host drives the policy through four hooks:
//
//   - Initialize provisions a group's segment pair (the only blocking hook)
//   - OnPageAdded records a page access (admission or promotion)
//   - SelectVictims nominates eviction candidates from the cold segment
//   - NotifyEvicted confirms a physical eviction so tracking state is shed
//
// # Failure Model
//
// Only New and Initialize return errors. The per-page hooks absorb every
// failure: a page that cannot be tracked is simply left to the host's
// fallback policy, and a scan that cannot run yields no victims. Absorbed
// failures are observable through an optional slog logger (WithLogger)
// and Metrics counters (WithMetrics).
//
// # Basic Usage
//
//	policy, err := cacheext.New(registry.NewMemory(), watchlist)
//	if err != nil {
//	    return err
//	}
//	if err := policy.Initialize(ctx, "workload"); err != nil {
//	    return err
//	}
//
//	// On every page-cache insertion or access:
//	policy.OnPageAdded("workload", page)
//
//	// Under memory pressure:
//	policy.SelectVictims(evictionCtx, "workload")
//
//	// After physically evicting a page:
//	policy.NotifyEvicted(page)
//
// The registry subpackage provides an in-memory ListRegistry, the regtest
// subpackage a conformance suite for host-supplied registries, and the
// sim subpackage a deterministic harness that replays workload traces
// against this policy and several reference caches.
package cacheext
