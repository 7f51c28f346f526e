// Package surface models the addressable regions a page is rendered into.
package surface

import (
	"maps"
	"slices"
	"sync"
)

type Region string

const (
	RegionGrid         Region = "challenges-grid"
	RegionPagination   Region = "pagination"
	RegionResultsCount Region = "results-count"

	RegionTotal  Region = "total-challenges"
	RegionEasy   Region = "easy-challenges"
	RegionMedium Region = "medium-challenges"
	RegionHard   Region = "hard-challenges"
)

type Surface interface {
	Write(region Region, content string)
	SetVisible(region Region, visible bool)
}

// Memory is a Surface that keeps region content in memory. It is safe for
// concurrent use.
type Memory struct {
	mu      sync.RWMutex
	content map[Region]string
	hidden  map[Region]bool
}

func NewMemory() *Memory {
	return &Memory{
		content: make(map[Region]string),
		hidden:  make(map[Region]bool),
	}
}

func (m *Memory) Write(region Region, content string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.content[region] = content
}

func (m *Memory) SetVisible(region Region, visible bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if visible {
		delete(m.hidden, region)
		return
	}
	m.hidden[region] = true
}

func (m *Memory) Content(region Region) string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.content[region]
}

// Visible reports whether a region is shown. Regions are visible until
// hidden explicitly.
func (m *Memory) Visible(region Region) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return !m.hidden[region]
}

// Shown returns the content of a region, or "" when it is hidden.
func (m *Memory) Shown(region Region) string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.hidden[region] {
		return ""
	}
	return m.content[region]
}

func (m *Memory) Regions() []Region {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Sorted(maps.Keys(m.content))
}
