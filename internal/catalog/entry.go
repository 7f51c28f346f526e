package catalog

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

var Difficulties = []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard}

func (d Difficulty) Valid() bool {
	return slices.Contains(Difficulties, d)
}

const dateLayout = "2006-01-02"

// Date is a calendar day without a time-of-day component.
type Date struct {
	time.Time
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return Date{t}, nil
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(dateLayout)
}

func (d *Date) UnmarshalYAML(node *yaml.Node) error {
	parsed, err := ParseDate(node.Value)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (d Date) MarshalYAML() (any, error) {
	return d.String(), nil
}

type Entry struct {
	ID          string     `yaml:"id"`
	Title       string     `yaml:"title"`
	Difficulty  Difficulty `yaml:"difficulty"`
	Topic       string     `yaml:"topic"`
	Date        Date       `yaml:"date"`
	Description string     `yaml:"description"`
	Strategy    string     `yaml:"strategy"`
	KeyLearning string     `yaml:"key_learning"`
	URL         string     `yaml:"url"`
	Tags        []string   `yaml:"tags,omitempty"`
}

func (e Entry) WithTags(tags ...string) Entry {
	newE := e
	newE.Tags = slices.Clone(tags)
	return newE
}

func (e Entry) HasTag(tag string) bool {
	return slices.Contains(e.Tags, tag)
}

func (e Entry) clone() Entry {
	e.Tags = slices.Clone(e.Tags)
	return e
}

func (e Entry) Validate() error {
	required := []struct {
		field string
		value string
	}{
		{"id", e.ID},
		{"title", e.Title},
		{"topic", e.Topic},
		{"description", e.Description},
		{"strategy", e.Strategy},
		{"key_learning", e.KeyLearning},
		{"url", e.URL},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return fmt.Errorf("%w: %s is required (id %q)", ErrInvalidEntry, r.field, e.ID)
		}
	}

	if !e.Difficulty.Valid() {
		return fmt.Errorf("%w: unknown difficulty %q (id %q)", ErrInvalidEntry, e.Difficulty, e.ID)
	}

	if e.Date.IsZero() {
		return fmt.Errorf("%w: date is required (id %q)", ErrInvalidEntry, e.ID)
	}

	return nil
}
