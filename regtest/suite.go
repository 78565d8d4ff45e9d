// Package regtest provides a conformance test suite for validating
// ListRegistry implementations against the contract the cacheext policy
// relies on.
//
// Host integrations that bring their own list infrastructure import this
// package and run the suite against a factory producing fresh, empty
// registries. The suite validates interface contracts only: handle
// allocation, append ordering, remove idempotence, iteration verdicts,
// and group isolation. Backend-specific behavior, like how long handles
// stay usable after process restart, is out of scope.
//
// Example usage:
//
//	func TestMyRegistry(t *testing.T) {
//	    regtest.TestSuite(t, func() cacheext.ListRegistry {
//	        return myhost.NewRegistry()
//	    })
//	}
package regtest

import (
	"testing"

	cacheext "github.com/bennyrubin/cache-ext"
)

// TestSuite runs all conformance tests against registries produced by
// newRegistry. The factory must return a fresh, empty registry on every
// call; tests create lists and pages, so instances cannot be shared.
func TestSuite(t *testing.T, newRegistry func() cacheext.ListRegistry) {
	t.Run("Handles", func(t *testing.T) {
		TestHandles(t, newRegistry())
	})

	t.Run("Append", func(t *testing.T) {
		TestAppendOrdering(t, newRegistry())
	})

	t.Run("Remove", func(t *testing.T) {
		TestRemove(t, newRegistry())
	})

	t.Run("Iterate", func(t *testing.T) {
		TestIterate(t, newRegistry())
	})

	t.Run("Isolation", func(t *testing.T) {
		TestGroupIsolation(t, newRegistry())
	})

	t.Run("Concurrency", func(t *testing.T) {
		TestConcurrentUse(t, newRegistry())
	})
}

// suitePage is a minimal healthy page for conformance runs. The suite
// brings its own page type so implementations are exercised against the
// bare cacheext.Page contract.
type suitePage struct {
	file cacheext.FileID
}

func (p *suitePage) File() (cacheext.FileID, bool) { return p.file, true }
func (p *suitePage) UpToDate() bool                { return true }
func (p *suitePage) OnList() bool                  { return true }
func (p *suitePage) Dirty() bool                   { return false }
func (p *suitePage) Writeback() bool               { return false }

// newPages creates n distinct pages owned by file.
func newPages(file cacheext.FileID, n int) []*suitePage {
	pages := make([]*suitePage, n)
	for i := range pages {
		pages[i] = &suitePage{file: file}
	}
	return pages
}

// collect drains list into a slice using Iterate with IterContinue.
func collect(t *testing.T, r cacheext.ListRegistry, group cacheext.GroupID, list cacheext.ListID) []cacheext.Page {
	t.Helper()

	var pages []cacheext.Page
	err := r.Iterate(group, list, func(_ int, page cacheext.Page) cacheext.IterVerdict {
		pages = append(pages, page)
		return cacheext.IterContinue
	})
	if err != nil {
		t.Fatalf("Iterate(%q, %d): got error %v, want nil", group, list, err)
	}
	return pages
}

// mustNewList creates a list or fails the test.
func mustNewList(t *testing.T, r cacheext.ListRegistry, group cacheext.GroupID) cacheext.ListID {
	t.Helper()

	id, err := r.NewList(group)
	if err != nil {
		t.Fatalf("NewList(%q): got error %v, want nil", group, err)
	}
	if !id.Valid() {
		t.Fatalf("NewList(%q): got reserved zero handle", group)
	}
	return id
}

// mustAppend appends a page or fails the test.
func mustAppend(t *testing.T, r cacheext.ListRegistry, list cacheext.ListID, page cacheext.Page) {
	t.Helper()

	if err := r.Append(list, page); err != nil {
		t.Fatalf("Append(%d): got error %v, want nil", list, err)
	}
}
