// Package testutil provides testing utilities for the cacheext policy.
// This file contains the eviction context fake.
package testutil

import (
	cacheext "github.com/bennyrubin/cache-ext"
)

// VictimRecorder is a cacheext.EvictionContext that accumulates selected
// pages in selection order. Limit bounds how many victims it accepts; the
// zero value is unbounded, which matches a host reclaiming everything the
// policy offers.
//
// A recorder serves one scan at a time and is not synchronized.
type VictimRecorder struct {
	Limit int
	Pages []cacheext.Page
}

// Select implements cacheext.EvictionContext.
func (r *VictimRecorder) Select(page cacheext.Page) bool {
	if r.Limit > 0 && len(r.Pages) >= r.Limit {
		return false
	}
	r.Pages = append(r.Pages, page)
	return true
}

// Has reports whether page was recorded as a victim.
func (r *VictimRecorder) Has(page cacheext.Page) bool {
	for _, p := range r.Pages {
		if p == page {
			return true
		}
	}
	return false
}

// Reset clears the recorded victims, keeping the limit.
func (r *VictimRecorder) Reset() {
	r.Pages = nil
}
