package cacheext

import (
	"errors"
	"fmt"
)

// Sentinel errors for the failure modes of the policy. They can be checked
// with errors.Is on errors returned by New and Initialize; all other hooks
// absorb failures into the diagnostic side channel instead of returning
// them.
var (
	// ErrMissingRegistry indicates the policy was constructed without a
	// ListRegistry.
	ErrMissingRegistry = errors.New("list registry is required")

	// ErrMissingWatchlist indicates the policy was constructed without a
	// Watchlist.
	ErrMissingWatchlist = errors.New("watchlist is required")

	// ErrInitFailed indicates segment creation failed during Initialize.
	// The group has no usable segments and the host must not route
	// further events for it to this policy instance.
	ErrInitFailed = errors.New("segment initialization failed")

	// ErrGroupExists indicates Initialize was called twice for the same
	// group. Segments live for the group's lifetime and are never
	// recreated.
	ErrGroupExists = errors.New("group already initialized")
)

// PolicyError wraps a failure with the operation and group it occurred in.
// It supports errors.Is and errors.As through Unwrap.
type PolicyError struct {
	// Op names the operation that failed ("new", "initialize", ...).
	Op string

	// Group is the memory-resource-group being operated on, if any.
	Group GroupID

	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *PolicyError) Error() string {
	if e.Group != "" {
		return fmt.Sprintf("cacheext: %s: group %q: %v", e.Op, e.Group, e.Err)
	}
	return fmt.Sprintf("cacheext: %s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error.
func (e *PolicyError) Unwrap() error { return e.Err }
