package proptest

import (
	"chall/internal/catalog"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"pgregory.net/rapid"
)

func assertEntriesEqual(t *rapid.T, expected, actual []catalog.Entry) {
	t.Helper()
	if diff := cmp.Diff(expected, actual, cmpopts.EquateEmpty()); diff != "" {
		t.Fatalf("entries mismatch (-want +got):\n%s", diff)
	}
}

func ids(entries []catalog.Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.ID
	}
	return out
}

func assertSameIDs(t *rapid.T, expected, actual []catalog.Entry) {
	t.Helper()
	if diff := cmp.Diff(ids(expected), ids(actual)); diff != "" {
		t.Fatalf("id mismatch (-want +got):\n%s", diff)
	}
}

// assertSubsequence fails unless every entry of sub appears in super in the
// same relative order.
func assertSubsequence(t *rapid.T, sub, super []catalog.Entry) {
	t.Helper()
	j := 0
	for _, e := range sub {
		for j < len(super) && super[j].ID != e.ID {
			j++
		}
		if j == len(super) {
			t.Fatalf("entry %s missing or out of order", e.ID)
		}
		j++
	}
}
