package regtest

import (
	"testing"

	cacheext "github.com/bennyrubin/cache-ext"
)

// TestIterate tests scan ordering, indexes, verdict handling, and the
// failure mode for scans that cannot start.
func TestIterate(t *testing.T, r cacheext.ListRegistry) {
	const group = cacheext.GroupID("alpha")

	t.Run("Empty", func(t *testing.T) {
		list := mustNewList(t, r, group)
		visits := 0
		err := r.Iterate(group, list, func(int, cacheext.Page) cacheext.IterVerdict {
			visits++
			return cacheext.IterContinue
		})
		if err != nil {
			t.Fatalf("Iterate(empty): got error %v, want nil", err)
		}
		if visits != 0 {
			t.Errorf("Iterate(empty): %d visits, want 0", visits)
		}
	})

	t.Run("Indexes", func(t *testing.T) {
		list := mustNewList(t, r, group)
		for _, page := range newPages(1, 4) {
			mustAppend(t, r, list, page)
		}

		next := 0
		err := r.Iterate(group, list, func(idx int, _ cacheext.Page) cacheext.IterVerdict {
			if idx != next {
				t.Errorf("Iterate: index %d, want %d", idx, next)
			}
			next++
			return cacheext.IterContinue
		})
		if err != nil {
			t.Fatalf("Iterate: got error %v, want nil", err)
		}
		if next != 4 {
			t.Errorf("Iterate: %d visits, want 4", next)
		}
	})

	t.Run("Stop", func(t *testing.T) {
		list := mustNewList(t, r, group)
		for _, page := range newPages(1, 4) {
			mustAppend(t, r, list, page)
		}

		visits := 0
		err := r.Iterate(group, list, func(int, cacheext.Page) cacheext.IterVerdict {
			visits++
			if visits == 2 {
				return cacheext.IterStop
			}
			return cacheext.IterContinue
		})
		if err != nil {
			t.Fatalf("Iterate: got error %v, want nil", err)
		}
		if visits != 2 {
			t.Errorf("Iterate: %d visits after stop, want 2", visits)
		}
	})

	t.Run("SelectKeepsMembership", func(t *testing.T) {
		list := mustNewList(t, r, group)
		pages := newPages(1, 3)
		for _, page := range pages {
			mustAppend(t, r, list, page)
		}

		err := r.Iterate(group, list, func(int, cacheext.Page) cacheext.IterVerdict {
			return cacheext.IterSelect
		})
		if err != nil {
			t.Fatalf("Iterate: got error %v, want nil", err)
		}

		// Selection is advisory; only Remove changes membership.
		if got := collect(t, r, group, list); len(got) != len(pages) {
			t.Errorf("Iterate after select: %d pages remain, want %d", len(got), len(pages))
		}
	})

	t.Run("UnknownList", func(t *testing.T) {
		err := r.Iterate(group, cacheext.ListID(1<<60), func(int, cacheext.Page) cacheext.IterVerdict {
			t.Fatal("Iterate(unknown handle): callback invoked")
			return cacheext.IterStop
		})
		if err == nil {
			t.Error("Iterate(unknown handle): got nil error, want error")
		}
	})

	t.Run("WrongGroup", func(t *testing.T) {
		list := mustNewList(t, r, group)
		err := r.Iterate("beta", list, func(int, cacheext.Page) cacheext.IterVerdict {
			t.Fatal("Iterate(wrong group): callback invoked")
			return cacheext.IterStop
		})
		if err == nil {
			t.Error("Iterate(wrong group): got nil error, want error")
		}
	})
}
