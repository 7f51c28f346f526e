package main

import (
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"

	"chall/internal/catalog"
	"chall/internal/config"
	"chall/internal/fragment"
	"chall/internal/present"
	"chall/internal/surface"
)

type AmbiguousMatchError struct {
	Query   string
	Matches []catalog.Entry
}

func (e *AmbiguousMatchError) Error() string {
	return fmt.Sprintf("multiple challenges match %q", e.Query)
}

func (e *AmbiguousMatchError) WriteMatches(w io.Writer) {
	fmt.Fprintln(w, "Multiple challenges match. Please be more specific:")
	for _, m := range e.Matches {
		fmt.Fprintf(w, "  - %s (%s)\n", m.ID, m.Title)
	}
}

func handleFindError(w io.Writer, err error) bool {
	var ambErr *AmbiguousMatchError
	if errors.As(err, &ambErr) {
		ambErr.WriteMatches(w)
		return true
	}
	return false
}

// findEntry resolves query by exact ID first, then by search.
func findEntry(store *catalog.Store, query string) (catalog.Entry, error) {
	if e, err := store.Get(query); err == nil {
		return e, nil
	}

	filters := catalog.DefaultFilters()
	filters.Search = query
	matches := catalog.Filter(store.Entries(), filters)
	switch len(matches) {
	case 0:
		return catalog.Entry{}, fmt.Errorf("%w: no challenge matching %s", catalog.ErrNotFound, query)
	case 1:
		return matches[0], nil
	default:
		return catalog.Entry{}, &AmbiguousMatchError{Query: query, Matches: matches}
	}
}

// writeRegions prints the visible, non-empty regions separated by blank
// lines.
func writeRegions(w io.Writer, mem *surface.Memory, regions ...surface.Region) {
	var parts []string
	for _, r := range regions {
		if content := mem.Shown(r); content != "" {
			parts = append(parts, content)
		}
	}
	if len(parts) == 0 {
		return
	}
	fmt.Fprintln(w, strings.Join(parts, "\n\n"))
}

// renderCatalog presents the store's current page to the terminal.
func renderCatalog(g *Globals, store *catalog.Store) present.View {
	mem := surface.NewMemory()
	p := present.New(store, mem, g.Render, present.WithLang(g.Config.Lang))
	v := p.Render()
	writeRegions(g.Out, mem, surface.RegionResultsCount, surface.RegionGrid, surface.RegionPagination)
	return v
}

// resolveURL makes a challenge URL absolute against the configured site.
func resolveURL(siteURL, target string) (string, error) {
	u, err := url.Parse(target)
	if err != nil {
		return "", fmt.Errorf("invalid challenge URL %q: %w", target, err)
	}
	if u.IsAbs() {
		return u.String(), nil
	}
	if siteURL == "" {
		return "", fmt.Errorf("challenge URL %q is relative; set site_url in the config", target)
	}
	base, err := url.Parse(siteURL)
	if err != nil {
		return "", fmt.Errorf("invalid site_url %q: %w", siteURL, err)
	}
	if !strings.HasSuffix(base.Path, "/") {
		base.Path += "/"
	}
	return base.ResolveReference(u).String(), nil
}

var errNoFragmentSource = errors.New("no fragment source configured; set fragments.base_url or fragments.dir")

func newFetcher(cfg *config.Config) (fragment.Fetcher, error) {
	switch {
	case cfg.Fragments.BaseURL != "":
		f, err := fragment.NewHTTPFetcher(cfg.Fragments.BaseURL, cfg.Fragments.Timeout)
		if err != nil {
			return nil, err
		}
		return f, nil
	case cfg.Fragments.Dir != "":
		return fragment.NewDirFetcher(os.DirFS(cfg.Fragments.Dir)), nil
	default:
		return nil, errNoFragmentSource
	}
}

func sections(cfg *config.Config) map[surface.Region]string {
	out := make(map[surface.Region]string, len(cfg.Fragments.Sections))
	for region, path := range cfg.Fragments.Sections {
		out[surface.Region(region)] = path
	}
	return out
}
