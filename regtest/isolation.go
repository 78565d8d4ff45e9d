package regtest

import (
	"sync"
	"testing"

	cacheext "github.com/bennyrubin/cache-ext"
)

// TestGroupIsolation tests that lists belonging to different groups never
// observe each other's pages.
func TestGroupIsolation(t *testing.T, r cacheext.ListRegistry) {
	alphaList := mustNewList(t, r, "alpha")
	betaList := mustNewList(t, r, "beta")

	alphaPages := newPages(1, 3)
	betaPages := newPages(2, 2)
	for _, page := range alphaPages {
		mustAppend(t, r, alphaList, page)
	}
	for _, page := range betaPages {
		mustAppend(t, r, betaList, page)
	}

	if got := collect(t, r, "alpha", alphaList); len(got) != len(alphaPages) {
		t.Errorf("alpha list: %d pages, want %d", len(got), len(alphaPages))
	}
	if got := collect(t, r, "beta", betaList); len(got) != len(betaPages) {
		t.Errorf("beta list: %d pages, want %d", len(got), len(betaPages))
	}

	// Removing alpha's pages must not disturb beta.
	for _, page := range alphaPages {
		if !r.Remove(page) {
			t.Error("Remove(alpha page): got false, want true")
		}
	}
	if got := collect(t, r, "beta", betaList); len(got) != len(betaPages) {
		t.Errorf("beta list after alpha removal: %d pages, want %d", len(got), len(betaPages))
	}
}

// TestConcurrentUse hammers one registry with parallel appends, removes,
// and scans. It validates freedom from data races and that every page
// ends up tracked exactly once or not at all.
func TestConcurrentUse(t *testing.T, r cacheext.ListRegistry) {
	const (
		group   = cacheext.GroupID("alpha")
		workers = 8
		rounds  = 200
	)

	list := mustNewList(t, r, group)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		pages := newPages(cacheext.FileID(w+1), rounds)

		wg.Add(1)
		go func() {
			defer wg.Done()
			for _, page := range pages {
				if err := r.Append(list, page); err != nil {
					t.Errorf("Append: got error %v, want nil", err)
					return
				}
				r.Remove(page)
			}
		}()
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < rounds; i++ {
			err := r.Iterate(group, list, func(int, cacheext.Page) cacheext.IterVerdict {
				return cacheext.IterContinue
			})
			if err != nil {
				t.Errorf("Iterate: got error %v, want nil", err)
				return
			}
		}
	}()

	wg.Wait()

	// Every worker removed what it appended.
	if got := collect(t, r, group, list); len(got) != 0 {
		t.Errorf("list after hammer: %d pages remain, want 0", len(got))
	}
}
