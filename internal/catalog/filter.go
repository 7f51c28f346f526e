package catalog

import "strings"

// Filter returns the entries matching every selector in f, in dataset order.
func Filter(entries []Entry, f FilterState) []Entry {
	query := strings.ToLower(f.Search)

	results := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if matchesFilter(e, f, query) {
			results = append(results, e.clone())
		}
	}
	return results
}

func matchesFilter(e Entry, f FilterState, query string) bool {
	if f.Difficulty != All && string(e.Difficulty) != f.Difficulty {
		return false
	}

	if f.Topic != All && e.Topic != f.Topic {
		return false
	}

	if query != "" && !matchesQuery(e, query) {
		return false
	}

	return true
}

func matchesQuery(e Entry, query string) bool {
	if strings.Contains(strings.ToLower(e.Title), query) {
		return true
	}
	if strings.Contains(strings.ToLower(e.Description), query) {
		return true
	}
	for _, tag := range e.Tags {
		if strings.Contains(strings.ToLower(tag), query) {
			return true
		}
	}
	return false
}
