// Package testutil provides testing utilities for the cacheext policy.
// This file contains the set-backed watchlist fake.
package testutil

import (
	"sync"

	cacheext "github.com/bennyrubin/cache-ext"
)

// Watchlist is a set-backed cacheext.Watchlist. Membership can change
// between calls, which tests use to model files entering and leaving the
// watched set at runtime.
type Watchlist struct {
	mu    sync.RWMutex
	files map[cacheext.FileID]struct{}
}

// WatchlistOf creates a watchlist containing the given files.
func WatchlistOf(files ...cacheext.FileID) *Watchlist {
	w := &Watchlist{files: make(map[cacheext.FileID]struct{}, len(files))}
	w.Add(files...)
	return w
}

// Contains implements cacheext.Watchlist.
func (w *Watchlist) Contains(file cacheext.FileID) bool {
	w.mu.RLock()
	defer w.mu.RUnlock()

	_, ok := w.files[file]
	return ok
}

// Add inserts files into the watched set.
func (w *Watchlist) Add(files ...cacheext.FileID) {
	w.mu.Lock()
	defer w.mu.Unlock()

	for _, file := range files {
		w.files[file] = struct{}{}
	}
}

// Drop removes files from the watched set.
func (w *Watchlist) Drop(files ...cacheext.FileID) {
	w.mu.Lock()
	defer w.mu.Unlock()

	for _, file := range files {
		delete(w.files, file)
	}
}
