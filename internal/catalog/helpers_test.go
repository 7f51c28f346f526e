package catalog_test

import (
	"fmt"
	"time"

	"chall/internal/catalog"
)

func newTestEntry(id string, difficulty catalog.Difficulty, topic string) catalog.Entry {
	return catalog.Entry{
		ID:          id,
		Title:       "Challenge " + id,
		Difficulty:  difficulty,
		Topic:       topic,
		Date:        catalog.NewDate(2025, time.January, 15),
		Description: "Description of " + id,
		Strategy:    "Strategy for " + id,
		KeyLearning: "Learning from " + id,
		URL:         "challenges/" + id + "/",
	}
}

func twoSum() catalog.Entry {
	e := newTestEntry("a", catalog.DifficultyEasy, "algorithms")
	e.Title = "Two Sum Problem"
	e.Description = "Given an array of integers and a target sum, find two numbers that add up to the target."
	return e.WithTags("array", "hash-map")
}

func numberedEntries(n int) []catalog.Entry {
	entries := make([]catalog.Entry, n)
	for i := range n {
		entries[i] = newTestEntry(fmt.Sprintf("e%02d", i), catalog.DifficultyMedium, "graphs")
	}
	return entries
}

func ids(entries []catalog.Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.ID
	}
	return out
}
