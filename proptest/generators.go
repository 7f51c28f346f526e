package proptest

import (
	"fmt"
	"strings"
	"time"

	"chall/internal/catalog"

	"pgregory.net/rapid"
)

var topics = []string{"arrays", "strings", "graphs", "dynamic-programming", "design"}

var (
	iterDirGen    = rapid.StringMatching(`[a-z]{8}`)
	wordGen       = rapid.StringMatching(`[a-z]{3,8}`)
	shortQueryGen = rapid.StringMatching(`[a-z]{1,3}`)
	queryGen      = rapid.StringMatching(`[a-z]{1,10}`)
	topicGen      = rapid.SampledFrom(topics)
	difficultyGen = rapid.SampledFrom(catalog.Difficulties)
)

func sentenceGen(minWords, maxWords int) *rapid.Generator[string] {
	return rapid.Custom(func(t *rapid.T) string {
		words := rapid.SliceOfN(wordGen, minWords, maxWords).Draw(t, "words")
		return strings.Join(words, " ")
	})
}

func dateGen() *rapid.Generator[catalog.Date] {
	return rapid.Custom(func(t *rapid.T) catalog.Date {
		year := rapid.IntRange(2020, 2026).Draw(t, "year")
		month := rapid.IntRange(1, 12).Draw(t, "month")
		day := rapid.IntRange(1, 28).Draw(t, "day")
		return catalog.NewDate(year, time.Month(month), day)
	})
}

// GenEntry draws a valid entry with the given ID.
func GenEntry(t *rapid.T, id string) catalog.Entry {
	e := catalog.Entry{
		ID:          id,
		Title:       sentenceGen(1, 4).Draw(t, "title"),
		Difficulty:  difficultyGen.Draw(t, "difficulty"),
		Topic:       topicGen.Draw(t, "topic"),
		Date:        dateGen().Draw(t, "date"),
		Description: sentenceGen(2, 8).Draw(t, "description"),
		Strategy:    sentenceGen(1, 5).Draw(t, "strategy"),
		KeyLearning: sentenceGen(1, 5).Draw(t, "keyLearning"),
		URL:         "https://example.com/solutions/" + id,
	}
	if tags := rapid.SliceOfN(wordGen, 0, 3).Draw(t, "tags"); len(tags) > 0 {
		e.Tags = tags
	}
	return e
}

// GenEntries draws between minCount and maxCount entries with unique IDs.
func GenEntries(t *rapid.T, minCount, maxCount int) []catalog.Entry {
	n := rapid.IntRange(minCount, maxCount).Draw(t, "numEntries")
	entries := make([]catalog.Entry, 0, n)
	for i := range n {
		entries = append(entries, GenEntry(t, fmt.Sprintf("challenge-%02d", i)))
	}
	return entries
}

func selectorGen[T ~string](values []T) *rapid.Generator[string] {
	options := []string{catalog.All}
	for _, v := range values {
		options = append(options, string(v))
	}
	return rapid.SampledFrom(options)
}

func filterStateGen() *rapid.Generator[catalog.FilterState] {
	return rapid.Custom(func(t *rapid.T) catalog.FilterState {
		var search string
		if rapid.Bool().Draw(t, "hasSearch") {
			search = shortQueryGen.Draw(t, "search")
		}
		return catalog.FilterState{
			Difficulty: selectorGen(catalog.Difficulties).Draw(t, "difficulty"),
			Topic:      selectorGen(topics).Draw(t, "topic"),
			Search:     search,
		}
	})
}

func malformedYAMLGen() *rapid.Generator[string] {
	return rapid.OneOf(
		rapid.Just("{{{{"),
		rapid.Just("}}}}"),
		rapid.Just("- - - -"),
		rapid.Just(":::"),
		rapid.Just("[\n["),
		rapid.Just("challenges: [unclosed"),
		rapid.Just("challenges: {unclosed"),
		rapid.Just("- item\n  bad indent"),
		rapid.Just("\t\ttabs: everywhere"),
		rapid.Just("version: \"unmatched quote"),
		rapid.StringMatching(`[^a-zA-Z0-9\s]{10,50}`),
		rapid.Custom(func(t *rapid.T) string {
			size := rapid.IntRange(10, 100).Draw(t, "size")
			bytes := make([]byte, size)
			for i := range bytes {
				bytes[i] = byte(rapid.IntRange(0, 255).Draw(t, "byte"))
			}
			return string(bytes)
		}),
	)
}

func missingFieldsGen() *rapid.Generator[string] {
	return rapid.OneOf(
		rapid.Just("version: 1\nchallenges:\n  - title: test\n"),
		rapid.Just("version: 1\nchallenges:\n  - id: abc123\n"),
		rapid.Just("version: 1\nchallenges:\n  - {}\n"),
		rapid.Just("version: 1\nchallenges:\n  - id: x\n    title: X\n    difficulty: easy\n    topic: arrays\n"),
		rapid.Just("version: 1\nchallenges:\n  - id: x\n    title: X\n    difficulty: trivial\n    topic: arrays\n    date: 2025-01-15\n    description: d\n    strategy: s\n    key_learning: k\n    url: u\n"),
	)
}

func extraFieldsGen() *rapid.Generator[string] {
	return rapid.Custom(func(t *rapid.T) string {
		extraField := rapid.SampledFrom([]string{
			"unknown_field",
			"extra",
			"foo",
			"bar_baz",
			"randomField123",
		}).Draw(t, "fieldName")
		extraValue := rapid.SampledFrom([]string{
			"string_value",
			"123",
			"true",
			"[1, 2, 3]",
			"{nested: value}",
		}).Draw(t, "fieldValue")

		return fmt.Sprintf(`version: 1
%s: %s
challenges:
  - id: test-id
    title: Test Challenge
    difficulty: medium
    topic: arrays
    date: 2025-01-15
    description: A test challenge.
    strategy: Two pointers.
    key_learning: Invariants.
    url: https://example.com/test-id
    %s: %s
`, extraField, extraValue, extraField, extraValue)
	})
}

func invalidTypesGen() *rapid.Generator[string] {
	return rapid.OneOf(
		rapid.Just(`version: "not_a_number"
challenges: []
`),
		rapid.Just(`version: 1
challenges:
  - id: test-id
    title: [not, a, string]
`),
		rapid.Just(`version: 1
challenges:
  - id: test-id
    title: Test
    date: "not-a-date"
`),
		rapid.Just(`version: 1
challenges: "nope"
`),
	)
}
