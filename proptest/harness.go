package proptest

import (
	"os"
	"path/filepath"
	"testing"

	"chall/internal/catalog"

	"pgregory.net/rapid"
)

const (
	minEntries        = 0
	maxEntries        = 30
	typicalMinEntries = 1
	typicalMaxEntries = 15
	minPageSize       = 1
	maxPageSize       = 8
)

type Harness struct {
	T   *rapid.T
	Dir string
}

func (h *Harness) GenEntries(minCount, maxCount int) []catalog.Entry {
	return GenEntries(h.T, minCount, maxCount)
}

func (h *Harness) DatasetPath() string {
	return filepath.Join(h.Dir, "challenges.yaml")
}

type StoreHarness struct {
	Harness
	Entries []catalog.Entry
	Store   *catalog.Store
}

// RunWithStore checks fn against a store over a freshly drawn dataset and
// page size.
func RunWithStore(t *testing.T, fn func(h *StoreHarness)) {
	rapid.Check(t, func(rt *rapid.T) {
		entries := GenEntries(rt, minEntries, typicalMaxEntries)
		size := rapid.IntRange(minPageSize, maxPageSize).Draw(rt, "pageSize")

		fn(&StoreHarness{
			Harness: Harness{T: rt},
			Entries: entries,
			Store:   catalog.NewStore(entries, catalog.WithPageSize(size)),
		})
	})
}

func RunBasic(t *testing.T, fn func(h *Harness)) {
	tempDir := t.TempDir()
	rapid.Check(t, func(rt *rapid.T) {
		iterDir := filepath.Join(tempDir, iterDirGen.Draw(rt, "iterDir"))
		if err := os.MkdirAll(iterDir, 0o755); err != nil {
			rt.Fatalf("failed to create iter dir: %v", err)
		}

		harness := &Harness{
			T:   rt,
			Dir: iterDir,
		}

		fn(harness)
	})
}
