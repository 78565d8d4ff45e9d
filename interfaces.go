package cacheext

// Page is a borrowed, host-owned handle for one cached page. The policy
// never allocates, frees, or retains pages beyond recording membership in
// a segment; handles are only valid for the duration of a callback.
//
// Implementations must be comparable (a pointer type in practice) so that
// registries can key membership by page identity.
type Page interface {
	// File returns the identity of the owning file. It reports false for
	// pages with no file backing (anonymous memory), which the policy
	// never tracks.
	File() (FileID, bool)

	// UpToDate reports whether the page content is valid. Pages that are
	// not up to date are mid-fill and unsafe to reclaim.
	UpToDate() bool

	// OnList reports whether the host currently considers the page
	// resident on one of its reclaim lists. Pages off-list are
	// mid-transition and unsafe to reclaim.
	OnList() bool

	// Dirty reports whether the page has modifications not yet written
	// back.
	Dirty() bool

	// Writeback reports whether the page is under active writeback.
	Writeback() bool
}

// IterVerdict is returned by an IterFunc to steer a segment scan.
type IterVerdict int

const (
	// IterContinue proceeds to the next page.
	IterContinue IterVerdict = iota

	// IterStop ends the scan immediately.
	IterStop

	// IterSelect marks the current page as selected by the caller and
	// proceeds to the next page. Registries do not unlink selected pages;
	// membership changes only when the host evicts and notifies.
	IterSelect
)

// IterFunc is the per-page callback for ListRegistry.Iterate. index is the
// zero-based position within the scan. The callback must not call back
// into the registry; scans run under the registry's own locking.
type IterFunc func(index int, page Page) IterVerdict

// ListRegistry is the host-provided store of ordered page lists, scoped by
// group. It is the only shared mutable resource the policy touches, and it
// must supply safe concurrent append, remove, and iterate semantics under
// the host's locking discipline.
//
// The registry package provides an in-memory implementation, and the
// regtest package a conformance suite for custom ones.
type ListRegistry interface {
	// NewList creates an empty list scoped to group and returns its
	// handle. NewList is the only registry operation that may block.
	NewList(group GroupID) (ListID, error)

	// Append adds page to the tail of list. The page must not currently
	// be a member of any list.
	Append(list ListID, page Page) error

	// Remove unlinks page from whichever list currently holds it and
	// reports whether the page was found. Removing an untracked page is
	// a no-op returning false.
	Remove(page Page) bool

	// Iterate walks list from head in insertion order, invoking fn per
	// page until the list ends or fn returns IterStop. It returns an
	// error if the scan cannot start, for example when list does not
	// exist under group.
	Iterate(group GroupID, list ListID, fn IterFunc) error
}

// Watchlist answers whether a file is of interest to the policy. Pages
// backed by files outside the watchlist are ignored entirely. Membership
// is maintained externally and may change between calls.
type Watchlist interface {
	Contains(file FileID) bool
}

// EvictionContext accumulates victim decisions for one reclaim pass. The
// host supplies it to SelectVictims and consumes the recorded pages
// afterwards.
type EvictionContext interface {
	// Select records page as an eviction victim. It returns false when
	// the context accepts no more victims this pass, in which case the
	// page was not recorded and the scan stops.
	Select(page Page) bool
}
