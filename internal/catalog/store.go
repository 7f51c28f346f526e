package catalog

import "github.com/google/uuid"

const DefaultPageSize = 6

type StoreOption func(*Store)

func WithPageSize(size int) StoreOption {
	return func(s *Store) {
		if size > 0 {
			s.pageSize = size
		}
	}
}

// Store holds the dataset together with the filter and page state of one
// browsing session. It is not safe for concurrent use.
type Store struct {
	entries  []Entry
	filters  FilterState
	page     int
	pageSize int
	session  string
}

func NewStore(entries []Entry, opts ...StoreOption) *Store {
	s := &Store{
		entries:  make([]Entry, len(entries)),
		filters:  DefaultFilters(),
		page:     1,
		pageSize: DefaultPageSize,
		session:  uuid.New().String(),
	}
	for i, e := range entries {
		s.entries[i] = e.clone()
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) SetDifficultyFilter(value string) {
	s.filters.Difficulty = value
	s.page = 1
}

func (s *Store) SetTopicFilter(value string) {
	s.filters.Topic = value
	s.page = 1
}

func (s *Store) SetSearch(text string) {
	s.filters.Search = text
	s.page = 1
}

func (s *Store) ClearFilters() {
	s.filters = DefaultFilters()
	s.page = 1
}

// GoToPage stores n as-is; out-of-range pages display nothing.
func (s *Store) GoToPage(n int) {
	s.page = n
}

func (s *Store) Apply(b Binding) {
	switch b.Kind {
	case FilterDifficulty:
		s.SetDifficultyFilter(b.Value)
	case FilterTopic:
		s.SetTopicFilter(b.Value)
	}
}

func (s *Store) Filters() FilterState { return s.filters }
func (s *Store) Page() int            { return s.page }
func (s *Store) PageSize() int        { return s.pageSize }
func (s *Store) SessionID() string    { return s.session }

func (s *Store) Entries() []Entry {
	out := make([]Entry, len(s.entries))
	for i, e := range s.entries {
		out[i] = e.clone()
	}
	return out
}

func (s *Store) Get(id string) (Entry, error) {
	for _, e := range s.entries {
		if e.ID == id {
			return e.clone(), nil
		}
	}
	return Entry{}, ErrNotFound
}

func (s *Store) Filtered() []Entry {
	return Filter(s.entries, s.filters)
}

func (s *Store) Displayed() []Entry {
	return Paginate(s.Filtered(), s.page, s.pageSize)
}

func (s *Store) TotalPages() int {
	return TotalPages(s.Filtered(), s.pageSize)
}

func (s *Store) Statistics() Statistics {
	return ComputeStatistics(s.entries)
}

func (s *Store) Topics() []string {
	return s.Statistics().Topics()
}
