package regtest

import (
	"testing"

	cacheext "github.com/bennyrubin/cache-ext"
)

// TestHandles tests list handle allocation: non-zero, distinct, and
// usable across multiple groups.
func TestHandles(t *testing.T, r cacheext.ListRegistry) {
	t.Run("NonZero", func(t *testing.T) {
		id := mustNewList(t, r, "alpha")
		if !id.Valid() {
			t.Errorf("NewList: handle %d, want non-zero", id)
		}
	})

	t.Run("Distinct", func(t *testing.T) {
		seen := make(map[cacheext.ListID]bool)
		for i := 0; i < 8; i++ {
			id := mustNewList(t, r, "alpha")
			if seen[id] {
				t.Errorf("NewList: handle %d issued twice", id)
			}
			seen[id] = true
		}
	})

	t.Run("MultipleGroups", func(t *testing.T) {
		a := mustNewList(t, r, "alpha")
		b := mustNewList(t, r, "beta")
		if a == b {
			t.Errorf("NewList: groups alpha and beta share handle %d", a)
		}
	})
}

// TestAppendOrdering tests that appended pages come back in head-to-tail
// insertion order and that unknown handles are rejected.
func TestAppendOrdering(t *testing.T, r cacheext.ListRegistry) {
	const group = cacheext.GroupID("alpha")

	t.Run("InsertionOrder", func(t *testing.T) {
		list := mustNewList(t, r, group)
		pages := newPages(1, 5)
		for _, page := range pages {
			mustAppend(t, r, list, page)
		}

		got := collect(t, r, group, list)
		if len(got) != len(pages) {
			t.Fatalf("Iterate: visited %d pages, want %d", len(got), len(pages))
		}
		for i, page := range pages {
			if got[i] != cacheext.Page(page) {
				t.Errorf("Iterate: position %d holds wrong page", i)
			}
		}
	})

	t.Run("UnknownList", func(t *testing.T) {
		if err := r.Append(cacheext.ListID(1<<60), &suitePage{file: 1}); err == nil {
			t.Error("Append(unknown handle): got nil error, want error")
		}
	})
}

// TestRemove tests remove idempotence and membership reporting.
func TestRemove(t *testing.T, r cacheext.ListRegistry) {
	const group = cacheext.GroupID("alpha")
	list := mustNewList(t, r, group)

	t.Run("Untracked", func(t *testing.T) {
		if r.Remove(&suitePage{file: 1}) {
			t.Error("Remove(untracked): got true, want false")
		}
	})

	t.Run("TrackedThenGone", func(t *testing.T) {
		page := &suitePage{file: 1}
		mustAppend(t, r, list, page)

		if !r.Remove(page) {
			t.Error("Remove(tracked): got false, want true")
		}
		if r.Remove(page) {
			t.Error("Remove(removed): got true, want false")
		}

		for _, got := range collect(t, r, group, list) {
			if got == cacheext.Page(page) {
				t.Error("Iterate: removed page still visited")
			}
		}
	})

	t.Run("MiddlePreservesOrder", func(t *testing.T) {
		list := mustNewList(t, r, group)
		pages := newPages(2, 3)
		for _, page := range pages {
			mustAppend(t, r, list, page)
		}

		if !r.Remove(pages[1]) {
			t.Fatal("Remove(middle): got false, want true")
		}

		got := collect(t, r, group, list)
		if len(got) != 2 {
			t.Fatalf("Iterate: visited %d pages, want 2", len(got))
		}
		if got[0] != cacheext.Page(pages[0]) || got[1] != cacheext.Page(pages[2]) {
			t.Error("Iterate: neighbor order disturbed by middle removal")
		}
	})

	t.Run("Reinsert", func(t *testing.T) {
		list := mustNewList(t, r, group)
		other := mustNewList(t, r, group)
		page := &suitePage{file: 3}

		mustAppend(t, r, list, page)
		if !r.Remove(page) {
			t.Fatal("Remove: got false, want true")
		}
		mustAppend(t, r, other, page)

		if got := collect(t, r, group, other); len(got) != 1 || got[0] != cacheext.Page(page) {
			t.Error("Iterate: page not tracked by the list it moved to")
		}
		for _, got := range collect(t, r, group, list) {
			if got == cacheext.Page(page) {
				t.Error("Iterate: page still visited on the list it left")
			}
		}
	})
}
