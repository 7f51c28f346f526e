package proptest

import (
	"chall/internal/catalog"

	"pgregory.net/rapid"
)

// verifyStoreInvariants checks the relationships that must hold between a
// store's dataset, filtered list and displayed page in any state.
func verifyStoreInvariants(t *rapid.T, s *catalog.Store) {
	t.Helper()

	entries := s.Entries()
	filtered := s.Filtered()
	displayed := s.Displayed()
	total := s.TotalPages()
	size := s.PageSize()

	assertSubsequence(t, filtered, entries)
	assertSubsequence(t, displayed, filtered)

	if len(displayed) > size {
		t.Fatalf("displayed %d entries with page size %d", len(displayed), size)
	}

	wantTotal := (len(filtered) + size - 1) / size
	if total != wantTotal {
		t.Fatalf("TotalPages()=%d, want %d for %d matches", total, wantTotal, len(filtered))
	}

	page := s.Page()
	inRange := page >= 1 && page <= total
	if inRange != (len(displayed) > 0) {
		t.Fatalf("page %d of %d displayed %d entries", page, total, len(displayed))
	}
	if inRange && page < total && len(displayed) != size {
		t.Fatalf("non-final page %d displayed %d entries, want %d", page, len(displayed), size)
	}
}
