package catalog

import "errors"

var (
	ErrNotFound     = errors.New("challenge not found")
	ErrDuplicateID  = errors.New("duplicate challenge id")
	ErrInvalidEntry = errors.New("invalid challenge entry")
)

// All is the selector value that disables a difficulty or topic filter.
const All = "all"

type Source interface {
	Load() ([]Entry, error)
}

type FilterState struct {
	Difficulty string
	Topic      string
	Search     string
}

func DefaultFilters() FilterState {
	return FilterState{
		Difficulty: All,
		Topic:      All,
		Search:     "",
	}
}

func (f FilterState) IsDefault() bool {
	return f == DefaultFilters()
}

type FilterKind string

const (
	FilterDifficulty FilterKind = "difficulty"
	FilterTopic      FilterKind = "topic"
)

// Binding ties a filter control to the selector it sets.
type Binding struct {
	Kind  FilterKind
	Value string
}

func (b Binding) Active(f FilterState) bool {
	switch b.Kind {
	case FilterDifficulty:
		return f.Difficulty == b.Value
	case FilterTopic:
		return f.Topic == b.Value
	default:
		return false
	}
}
