// Package registry provides ListRegistry implementations for the
// cacheext policy.
//
// Memory is the reference implementation: per-group ordered page lists
// held in process memory, suitable for tests, simulations, and user-space
// hosts. Hosts with their own list infrastructure implement
// cacheext.ListRegistry directly and can validate the contract with the
// regtest package.
package registry

import (
	"container/list"
	"fmt"
	"sync"

	cacheext "github.com/bennyrubin/cache-ext"
)

// Memory is an in-memory cacheext.ListRegistry safe for concurrent use.
// Lists are doubly linked with O(1) append and remove, and page
// membership is indexed by page identity so Remove never scans.
//
// Handles are allocated monotonically starting at 1; the reserved zero
// handle is never issued.
type Memory struct {
	mu     sync.RWMutex
	nextID cacheext.ListID
	limit  int
	lists  map[cacheext.ListID]*memList
	pages  map[cacheext.Page]*membership
}

type memList struct {
	id    cacheext.ListID
	group cacheext.GroupID
	elems *list.List
}

// membership locates a page inside its owning list for O(1) removal.
type membership struct {
	owner *memList
	elem  *list.Element
}

// MemoryOption configures a Memory registry.
type MemoryOption func(*Memory)

// WithListLimit caps the number of lists the registry will allocate;
// NewList fails with ErrListLimit beyond the cap. The zero default is
// unlimited.
func WithListLimit(n int) MemoryOption {
	return func(m *Memory) {
		m.limit = n
	}
}

// NewMemory creates an empty Memory registry.
func NewMemory(opts ...MemoryOption) *Memory {
	m := &Memory{
		lists: make(map[cacheext.ListID]*memList),
		pages: make(map[cacheext.Page]*membership),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// NewList creates an empty list scoped to group and returns its handle.
func (m *Memory) NewList(group cacheext.GroupID) (cacheext.ListID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.limit > 0 && len(m.lists) >= m.limit {
		return 0, fmt.Errorf("%w: %d lists", ErrListLimit, m.limit)
	}

	m.nextID++
	id := m.nextID
	m.lists[id] = &memList{
		id:    id,
		group: group,
		elems: list.New(),
	}
	return id, nil
}

// Append adds page to the tail of list. The page must not currently be
// tracked by any list.
func (m *Memory) Append(listID cacheext.ListID, page cacheext.Page) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	l, ok := m.lists[listID]
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownList, listID)
	}
	if _, tracked := m.pages[page]; tracked {
		return ErrPageTracked
	}

	m.pages[page] = &membership{
		owner: l,
		elem:  l.elems.PushBack(page),
	}
	return nil
}

// Remove unlinks page from whichever list holds it and reports whether
// it was found.
func (m *Memory) Remove(page cacheext.Page) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	ref, ok := m.pages[page]
	if !ok {
		return false
	}

	ref.owner.elems.Remove(ref.elem)
	delete(m.pages, page)
	return true
}

// Iterate walks list from head to tail in insertion order. The scan
// holds the registry's read lock, so fn must not call back into the
// registry.
func (m *Memory) Iterate(group cacheext.GroupID, listID cacheext.ListID, fn cacheext.IterFunc) error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	l, ok := m.lists[listID]
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownList, listID)
	}
	if l.group != group {
		return fmt.Errorf("%w: list %d is scoped to %q", ErrWrongGroup, listID, l.group)
	}

	idx := 0
	for elem := l.elems.Front(); elem != nil; elem = elem.Next() {
		switch fn(idx, elem.Value.(cacheext.Page)) {
		case cacheext.IterContinue, cacheext.IterSelect:
			// Selected pages stay linked until the host evicts them
			// and notifies the policy.
		default:
			return nil
		}
		idx++
	}
	return nil
}

// Len reports the number of pages on list, or 0 for an unknown handle.
func (m *Memory) Len(listID cacheext.ListID) int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	l, ok := m.lists[listID]
	if !ok {
		return 0
	}
	return l.elems.Len()
}

// Pages returns the pages on list in head-to-tail order.
func (m *Memory) Pages(listID cacheext.ListID) []cacheext.Page {
	m.mu.RLock()
	defer m.mu.RUnlock()

	l, ok := m.lists[listID]
	if !ok {
		return nil
	}

	pages := make([]cacheext.Page, 0, l.elems.Len())
	for elem := l.elems.Front(); elem != nil; elem = elem.Next() {
		pages = append(pages, elem.Value.(cacheext.Page))
	}
	return pages
}

// Holding reports which list currently tracks page.
func (m *Memory) Holding(page cacheext.Page) (cacheext.ListID, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ref, ok := m.pages[page]
	if !ok {
		return 0, false
	}
	return ref.owner.id, true
}
