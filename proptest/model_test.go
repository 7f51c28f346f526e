package proptest

import (
	"strings"

	"chall/internal/catalog"

	"pgregory.net/rapid"
)

// storeModel is a reference implementation of the store's filter and page
// state.
type storeModel struct {
	entries []catalog.Entry
	filters catalog.FilterState
	page    int
	size    int
}

func newStoreModel(entries []catalog.Entry, size int) *storeModel {
	return &storeModel{
		entries: entries,
		filters: catalog.DefaultFilters(),
		page:    1,
		size:    size,
	}
}

func (m *storeModel) matches(e catalog.Entry) bool {
	f := m.filters
	if f.Difficulty != catalog.All && string(e.Difficulty) != f.Difficulty {
		return false
	}
	if f.Topic != catalog.All && e.Topic != f.Topic {
		return false
	}
	if f.Search == "" {
		return true
	}
	q := strings.ToLower(f.Search)
	fields := append([]string{e.Title, e.Description}, e.Tags...)
	for _, field := range fields {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}

func (m *storeModel) filtered() []catalog.Entry {
	var out []catalog.Entry
	for _, e := range m.entries {
		if m.matches(e) {
			out = append(out, e)
		}
	}
	return out
}

func (m *storeModel) displayed() []catalog.Entry {
	filtered := m.filtered()
	start := (m.page - 1) * m.size
	if m.page < 1 || start >= len(filtered) {
		return nil
	}
	return filtered[start:min(start+m.size, len(filtered))]
}

type CheckedStore struct {
	real  *catalog.Store
	model *storeModel
	t     *rapid.T
}

func NewCheckedStore(t *rapid.T, entries []catalog.Entry, size int) *CheckedStore {
	return &CheckedStore{
		real:  catalog.NewStore(entries, catalog.WithPageSize(size)),
		model: newStoreModel(entries, size),
		t:     t,
	}
}

func (c *CheckedStore) SetDifficultyFilter(v string) {
	c.real.SetDifficultyFilter(v)
	c.model.filters.Difficulty = v
	c.model.page = 1
}

func (c *CheckedStore) SetTopicFilter(v string) {
	c.real.SetTopicFilter(v)
	c.model.filters.Topic = v
	c.model.page = 1
}

func (c *CheckedStore) SetSearch(q string) {
	c.real.SetSearch(q)
	c.model.filters.Search = q
	c.model.page = 1
}

func (c *CheckedStore) ClearFilters() {
	c.real.ClearFilters()
	c.model.filters = catalog.DefaultFilters()
	c.model.page = 1
}

func (c *CheckedStore) GoToPage(n int) {
	c.real.GoToPage(n)
	c.model.page = n
}

func (c *CheckedStore) Check() {
	c.t.Helper()
	if got := c.real.Filters(); got != c.model.filters {
		c.t.Fatalf("filters diverged: real=%+v model=%+v", got, c.model.filters)
	}
	if got := c.real.Page(); got != c.model.page {
		c.t.Fatalf("page diverged: real=%d model=%d", got, c.model.page)
	}
	assertSameIDs(c.t, c.model.filtered(), c.real.Filtered())
	assertSameIDs(c.t, c.model.displayed(), c.real.Displayed())
	verifyStoreInvariants(c.t, c.real)
}
