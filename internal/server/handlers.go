package server

import (
	"bytes"
	"errors"
	"html/template"
	"net/http"
	"slices"
	"strconv"
	"strings"

	"chall/internal/catalog"
	"chall/internal/fragment"
	"chall/internal/logging"
	"chall/internal/present"
	"chall/internal/prefs"
	"chall/internal/surface"
	"chall/internal/ui"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type controlLink struct {
	Label  string
	URL    string
	Active bool
}

type groupData struct {
	Kind     catalog.FilterKind
	Controls []controlLink
}

type catalogData struct {
	Filters        catalog.FilterState
	Groups         []groupData
	Grid           template.HTML
	Pagination     template.HTML
	Count          template.HTML
	ShowPagination bool
	ShowCount      bool
}

type sectionData struct {
	ID   surface.Region
	HTML template.HTML
}

type statsData struct {
	Total, Easy, Medium, Hard string
}

type pageData struct {
	Lang     string
	Theme    prefs.Theme
	Sections []sectionData
	Stats    statsData
	Catalog  catalogData
}

// storeFromQuery builds a per-request store from the difficulty, topic, q
// and page query parameters. A page that is not a number is page 1.
func (s *Server) storeFromQuery(r *http.Request) *catalog.Store {
	q := r.URL.Query()
	store := catalog.NewStore(s.entries, catalog.WithPageSize(s.cfg.PageSize))

	if d := q.Get("difficulty"); d != "" {
		store.Apply(catalog.Binding{Kind: catalog.FilterDifficulty, Value: d})
	}
	if t := q.Get("topic"); t != "" {
		store.Apply(catalog.Binding{Kind: catalog.FilterTopic, Value: t})
	}
	store.SetSearch(q.Get("q"))
	if p, err := strconv.Atoi(strings.TrimSpace(q.Get("page"))); err == nil {
		store.GoToPage(p)
	}
	return store
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	logger := logging.FromContext(r.Context())
	store := s.storeFromQuery(r)
	surf := surface.NewMemory()
	markup := newHTMLMarkup(s.tmpl, store.Filters())
	p := present.New(store, surf, markup, present.WithLang(s.cfg.Lang))

	p.Render()
	if err := markup.Err(); err != nil {
		logger.Error("failed to render catalog", zap.Error(err))
		http.Error(w, "failed to render catalog", http.StatusInternalServerError)
		return
	}

	cat := catalogData{
		Filters:        store.Filters(),
		Groups:         s.filterGroups(store),
		Grid:           template.HTML(surf.Content(surface.RegionGrid)),
		Pagination:     template.HTML(surf.Content(surface.RegionPagination)),
		Count:          template.HTML(surf.Content(surface.RegionResultsCount)),
		ShowPagination: surf.Visible(surface.RegionPagination),
		ShowCount:      surf.Visible(surface.RegionResultsCount),
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Vary", "HX-Request")

	if isHTMX(r) {
		s.execute(w, r, "catalog", cat)
		return
	}

	p.RenderStats(store.Statistics())
	data := pageData{
		Lang:  s.cfg.Lang,
		Theme: s.theme(),
		Stats: statsData{
			Total:  surf.Content(surface.RegionTotal),
			Easy:   surf.Content(surface.RegionEasy),
			Medium: surf.Content(surface.RegionMedium),
			Hard:   surf.Content(surface.RegionHard),
		},
		Catalog: cat,
	}

	if s.fetcher != nil && len(s.cfg.Sections) > 0 {
		res := s.newLoader(surf).LoadBatch(r.Context(), s.cfg.Sections)
		if err := res.Err(); err != nil {
			logger.Warn("some fragments failed to load", zap.Error(err))
		}
		regions := make([]surface.Region, 0, len(s.cfg.Sections))
		for region := range s.cfg.Sections {
			regions = append(regions, region)
		}
		slices.Sort(regions)
		for _, region := range regions {
			data.Sections = append(data.Sections, sectionData{ID: region, HTML: template.HTML(surf.Content(region))})
		}
	}

	s.execute(w, r, "page", data)
}

func (s *Server) filterGroups(store *catalog.Store) []groupData {
	filters := store.Filters()
	groups := ui.Controls(store.Topics(), s.cfg.Lang)

	out := make([]groupData, len(groups))
	for i, g := range groups {
		out[i] = groupData{Kind: g.Kind, Controls: make([]controlLink, len(g.Controls))}
		for j, c := range g.Controls {
			next := filters
			switch c.Binding.Kind {
			case catalog.FilterDifficulty:
				next.Difficulty = c.Binding.Value
			case catalog.FilterTopic:
				next.Topic = c.Binding.Value
			}
			out[i].Controls[j] = controlLink{
				Label:  c.Label,
				URL:    catalogURL(next, 1),
				Active: c.Binding.Active(filters),
			}
		}
	}
	return out
}

func (s *Server) theme() prefs.Theme {
	if s.prefs == nil {
		return prefs.ThemeLight
	}
	return s.prefs.Load()
}

func (s *Server) handleTheme(w http.ResponseWriter, r *http.Request) {
	if s.prefs == nil {
		http.Error(w, "preferences are not configured", http.StatusNotFound)
		return
	}
	theme, err := s.prefs.Toggle()
	if err != nil {
		logging.FromContext(r.Context()).Error("failed to toggle theme", zap.Error(err))
		http.Error(w, "failed to save theme", http.StatusInternalServerError)
		return
	}
	logging.FromContext(r.Context()).Debug("theme toggled", zap.String("theme", string(theme)))
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// handleFragment serves configured fragment paths only.
func (s *Server) handleFragment(w http.ResponseWriter, r *http.Request) {
	if s.fetcher == nil {
		http.NotFound(w, r)
		return
	}
	path := chi.URLParam(r, "*")
	if !s.fragments[path] {
		http.NotFound(w, r)
		return
	}

	surf := surface.NewMemory()
	content, err := s.newLoader(surf).Load(r.Context(), surface.Region("fragment"), path)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	switch {
	case errors.Is(err, fragment.ErrNotFound):
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(surf.Content("fragment")))
	case err != nil:
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(surf.Content("fragment")))
	default:
		_, _ = w.Write([]byte(content))
	}
}

func (s *Server) execute(w http.ResponseWriter, r *http.Request, name string, data any) {
	var buf bytes.Buffer
	if err := s.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		logging.FromContext(r.Context()).Error("template exec error", zap.String("template", name), zap.Error(err))
		http.Error(w, "failed to render page", http.StatusInternalServerError)
		return
	}
	_, _ = buf.WriteTo(w)
}
