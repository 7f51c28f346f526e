package server

import (
	"bytes"
	"embed"
	"errors"
	"html/template"
	"net/url"
	"strconv"

	"chall/internal/catalog"
	"chall/internal/present"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

func parseTemplates() (*template.Template, error) {
	return template.New("_root").ParseFS(templateFS, "templates/*.tmpl")
}

// catalogURL links to the catalog with the given filters and page,
// omitting defaults.
func catalogURL(f catalog.FilterState, page int) string {
	q := url.Values{}
	if f.Difficulty != catalog.All && f.Difficulty != "" {
		q.Set("difficulty", f.Difficulty)
	}
	if f.Topic != catalog.All && f.Topic != "" {
		q.Set("topic", f.Topic)
	}
	if f.Search != "" {
		q.Set("q", f.Search)
	}
	if page != 1 {
		q.Set("page", strconv.Itoa(page))
	}
	if len(q) == 0 {
		return "/"
	}
	return "/?" + q.Encode()
}

type pageLink struct {
	Number int
	Active bool
	URL    string
}

type pagerData struct {
	Prev  string
	Next  string
	Pages []pageLink
}

// htmlMarkup renders the catalog regions with html/template. Links carry
// the filters of the request being rendered.
type htmlMarkup struct {
	tmpl    *template.Template
	filters catalog.FilterState
	err     error
}

func newHTMLMarkup(tmpl *template.Template, filters catalog.FilterState) *htmlMarkup {
	return &htmlMarkup{tmpl: tmpl, filters: filters}
}

func (m *htmlMarkup) Err() error {
	return m.err
}

func (m *htmlMarkup) exec(name string, data any) string {
	var buf bytes.Buffer
	if err := m.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		m.err = errors.Join(m.err, err)
		return ""
	}
	return buf.String()
}

func (m *htmlMarkup) Cards(cards []present.Card) string {
	return m.exec("cards", cards)
}

func (m *htmlMarkup) NoResults() string {
	return m.exec("no-results", nil)
}

func (m *htmlMarkup) Pagination(p present.Pagination) string {
	data := pagerData{Pages: make([]pageLink, len(p.Pages))}
	if p.HasPrev() {
		data.Prev = catalogURL(m.filters, p.Prev)
	}
	if p.HasNext() {
		data.Next = catalogURL(m.filters, p.Next)
	}
	for i, b := range p.Pages {
		data.Pages[i] = pageLink{Number: b.Number, Active: b.Active, URL: catalogURL(m.filters, b.Number)}
	}
	return m.exec("pagination", data)
}

func (m *htmlMarkup) ResultsCount(c present.ResultsCount) string {
	return m.exec("results-count", c.String())
}
