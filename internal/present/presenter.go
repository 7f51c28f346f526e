// Package present turns catalog store state into rendered page regions.
package present

import (
	"strconv"

	"chall/internal/catalog"
	"chall/internal/format"
	"chall/internal/surface"
)

// Markup renders view pieces into the markup of a particular display.
type Markup interface {
	Cards(cards []Card) string
	NoResults() string
	Pagination(p Pagination) string
	ResultsCount(c ResultsCount) string
}

type Option func(*Presenter)

func WithLang(lang string) Option {
	return func(p *Presenter) {
		p.lang = lang
	}
}

type Presenter struct {
	store   *catalog.Store
	surface surface.Surface
	markup  Markup
	lang    string
}

func New(store *catalog.Store, s surface.Surface, markup Markup, opts ...Option) *Presenter {
	p := &Presenter{
		store:   store,
		surface: s,
		markup:  markup,
		lang:    format.DefaultLang,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Presenter) Store() *catalog.Store {
	return p.store
}

func (p *Presenter) View() View {
	return BuildView(p.store, p.lang)
}

// Render writes the current view into the surface and returns it.
func (p *Presenter) Render() View {
	v := p.View()

	if v.State == StateEmpty {
		p.surface.Write(surface.RegionGrid, p.markup.NoResults())
		p.surface.Write(surface.RegionPagination, "")
		p.surface.Write(surface.RegionResultsCount, "")
		p.surface.SetVisible(surface.RegionPagination, false)
		p.surface.SetVisible(surface.RegionResultsCount, false)
		return v
	}

	p.surface.Write(surface.RegionGrid, p.markup.Cards(v.Cards))

	pagination := ""
	if v.Pagination != nil {
		pagination = p.markup.Pagination(*v.Pagination)
	}
	p.surface.Write(surface.RegionPagination, pagination)
	p.surface.Write(surface.RegionResultsCount, p.markup.ResultsCount(*v.Count))
	p.surface.SetVisible(surface.RegionPagination, true)
	p.surface.SetVisible(surface.RegionResultsCount, true)
	return v
}

// Recover is the action behind the no-results state.
func (p *Presenter) Recover() View {
	p.store.ClearFilters()
	return p.Render()
}

// RenderStats writes the summary counters. Call it once at load time.
func (p *Presenter) RenderStats(stats catalog.Statistics) Summary {
	s := NewSummary(stats)
	p.surface.Write(surface.RegionTotal, strconv.Itoa(s.Total))
	p.surface.Write(surface.RegionEasy, strconv.Itoa(s.Easy))
	p.surface.Write(surface.RegionMedium, strconv.Itoa(s.Medium))
	p.surface.Write(surface.RegionHard, strconv.Itoa(s.Hard))
	return s
}
