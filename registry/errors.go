package registry

import "errors"

// Sentinel errors reported by registry implementations. Callers check
// them with errors.Is; returned errors may carry additional detail.
var (
	// ErrUnknownList indicates an operation named a handle the registry
	// never allocated.
	ErrUnknownList = errors.New("unknown list")

	// ErrWrongGroup indicates a scan named a list that belongs to a
	// different group.
	ErrWrongGroup = errors.New("list does not belong to group")

	// ErrPageTracked indicates an append for a page that is still a
	// member of some list. A page must be removed before it is inserted
	// again.
	ErrPageTracked = errors.New("page already tracked on a list")

	// ErrListLimit indicates the registry refused to allocate another
	// list.
	ErrListLimit = errors.New("list limit reached")
)
