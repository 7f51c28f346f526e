package catalog

type Statistics struct {
	Total        int
	ByDifficulty map[Difficulty]int
	ByTopic      map[string]int
	topics       []string
}

func ComputeStatistics(entries []Entry) Statistics {
	stats := Statistics{
		Total:        len(entries),
		ByDifficulty: make(map[Difficulty]int, len(Difficulties)),
		ByTopic:      make(map[string]int),
	}
	for _, d := range Difficulties {
		stats.ByDifficulty[d] = 0
	}

	for _, e := range entries {
		if _, ok := stats.ByDifficulty[e.Difficulty]; ok {
			stats.ByDifficulty[e.Difficulty]++
		}
		if _, seen := stats.ByTopic[e.Topic]; !seen {
			stats.topics = append(stats.topics, e.Topic)
		}
		stats.ByTopic[e.Topic]++
	}

	return stats
}

// Topics lists topics in the order they first appear in the dataset.
func (s Statistics) Topics() []string {
	out := make([]string, len(s.topics))
	copy(out, s.topics)
	return out
}
