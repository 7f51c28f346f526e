package present

import (
	"fmt"

	"chall/internal/catalog"
	"chall/internal/format"
)

const ReadMoreLabel = "Read Full Solution →"

type State int

const (
	StateEmpty State = iota
	StatePopulated
)

func (s State) String() string {
	if s == StatePopulated {
		return "populated"
	}
	return "empty"
}

// Card is the display form of one entry.
type Card struct {
	ID              string
	Title           string
	Difficulty      catalog.Difficulty
	DifficultyLabel string
	Topic           string
	TopicLabel      string
	Date            string
	Description     string
	Strategy        string
	KeyLearning     string
	Tags            []string
	URL             string
	ActionLabel     string
}

type PageButton struct {
	Number int
	Active bool
}

// Pagination holds the controls for a multi-page result. Prev and Next are
// zero when the control is absent.
type Pagination struct {
	Prev  int
	Next  int
	Pages []PageButton
}

func (p Pagination) HasPrev() bool { return p.Prev > 0 }
func (p Pagination) HasNext() bool { return p.Next > 0 }

type ResultsCount struct {
	Start int
	End   int
	Total int
}

func (c ResultsCount) String() string {
	return fmt.Sprintf("Showing %d-%d of %d challenges", c.Start, c.End, c.Total)
}

// View is everything needed to draw the catalog for the current store state.
// Pagination is nil when there is at most one page; Count is nil in the
// empty state.
type View struct {
	State      State
	Cards      []Card
	Pagination *Pagination
	Count      *ResultsCount
	Filters    catalog.FilterState
}

func NewCard(e catalog.Entry, lang string) Card {
	return Card{
		ID:              e.ID,
		Title:           e.Title,
		Difficulty:      e.Difficulty,
		DifficultyLabel: format.Badge(string(e.Difficulty), lang),
		Topic:           e.Topic,
		TopicLabel:      format.Badge(e.Topic, lang),
		Date:            format.Date(e.Date.Time, lang),
		Description:     e.Description,
		Strategy:        e.Strategy,
		KeyLearning:     e.KeyLearning,
		Tags:            append([]string(nil), e.Tags...),
		URL:             e.URL,
		ActionLabel:     ReadMoreLabel,
	}
}

// BuildView derives the view for the store's current state. A page with no
// entries, whether because nothing matched or the page is out of range,
// produces the empty state.
func BuildView(s *catalog.Store, lang string) View {
	filtered := s.Filtered()
	page := s.Page()
	size := s.PageSize()
	displayed := catalog.Paginate(filtered, page, size)

	v := View{Filters: s.Filters()}
	if len(displayed) == 0 {
		v.State = StateEmpty
		return v
	}

	v.State = StatePopulated
	v.Cards = make([]Card, len(displayed))
	for i, e := range displayed {
		v.Cards[i] = NewCard(e, lang)
	}

	start := (page-1)*size + 1
	v.Count = &ResultsCount{
		Start: start,
		End:   start + len(displayed) - 1,
		Total: len(filtered),
	}

	if totalPages := catalog.TotalPages(filtered, size); totalPages > 1 {
		v.Pagination = buildPagination(page, totalPages)
	}

	return v
}

func buildPagination(page, totalPages int) *Pagination {
	p := &Pagination{Pages: make([]PageButton, totalPages)}
	if page > 1 {
		p.Prev = page - 1
	}
	if page < totalPages {
		p.Next = page + 1
	}
	for i := range totalPages {
		p.Pages[i] = PageButton{Number: i + 1, Active: i+1 == page}
	}
	return p
}

type TopicCount struct {
	Topic string
	Count int
}

// Summary is the load-time statistics widget.
type Summary struct {
	Total  int
	Easy   int
	Medium int
	Hard   int
	Topics []TopicCount
}

func NewSummary(stats catalog.Statistics) Summary {
	s := Summary{
		Total:  stats.Total,
		Easy:   stats.ByDifficulty[catalog.DifficultyEasy],
		Medium: stats.ByDifficulty[catalog.DifficultyMedium],
		Hard:   stats.ByDifficulty[catalog.DifficultyHard],
	}
	for _, topic := range stats.Topics() {
		s.Topics = append(s.Topics, TopicCount{Topic: topic, Count: stats.ByTopic[topic]})
	}
	return s
}
