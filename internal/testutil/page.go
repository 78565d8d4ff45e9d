// Package testutil provides testing utilities for the cacheext policy.
// This file contains the fake page implementation.
package testutil

import (
	cacheext "github.com/bennyrubin/cache-ext"
)

// Page is a mutable fake page for tests. The zero value is a healthy
// file-backed page: up to date, resident on the host's lists, clean, and
// not under writeback. Flip the flag fields to stage reclaim edge cases.
//
// Identity is pointer identity, which satisfies the comparability the
// policy requires. The fields are not synchronized; set them before
// handing the page to concurrent code.
type Page struct {
	// ID is the identity of the owning file. Many pages may share one ID,
	// just as a file spans many pages.
	ID cacheext.FileID

	// Anonymous hides the file identity, making the page anonymous
	// memory.
	Anonymous bool

	// Stale marks the page content as not up to date (mid-fill).
	Stale bool

	// OffList detaches the page from the host's reclaim lists
	// (mid-transition).
	OffList bool

	// IsDirty marks the page as having unwritten modifications.
	IsDirty bool

	// InWriteback marks the page as under active writeback.
	InWriteback bool
}

// NewPage creates a healthy file-backed page owned by file.
func NewPage(file cacheext.FileID) *Page {
	return &Page{ID: file}
}

// FilePages creates n healthy pages all owned by file.
func FilePages(file cacheext.FileID, n int) []*Page {
	pages := make([]*Page, n)
	for i := range pages {
		pages[i] = NewPage(file)
	}
	return pages
}

// File implements cacheext.Page.
func (p *Page) File() (cacheext.FileID, bool) {
	if p.Anonymous {
		return 0, false
	}
	return p.ID, true
}

// UpToDate implements cacheext.Page.
func (p *Page) UpToDate() bool { return !p.Stale }

// OnList implements cacheext.Page.
func (p *Page) OnList() bool { return !p.OffList }

// Dirty implements cacheext.Page.
func (p *Page) Dirty() bool { return p.IsDirty }

// Writeback implements cacheext.Page.
func (p *Page) Writeback() bool { return p.InWriteback }
