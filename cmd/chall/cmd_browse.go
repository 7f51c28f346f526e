package main

import (
	"errors"
	"fmt"
	"strings"

	"chall/internal/catalog"
	"chall/internal/ui"

	"github.com/charmbracelet/huh"
)

type actionKind int

const (
	actionFilter actionKind = iota
	actionSearch
	actionPage
	actionClear
	actionQuit
)

type browseAction struct {
	Kind    actionKind
	Binding catalog.Binding
	Page    int
}

type BrowseCmd struct{}

// applyAction updates store for a. It reports false when browsing should
// stop. search is the text entered for a search action.
func applyAction(store *catalog.Store, a browseAction, search string) bool {
	switch a.Kind {
	case actionFilter:
		store.Apply(a.Binding)
	case actionSearch:
		store.SetSearch(search)
	case actionPage:
		store.GoToPage(a.Page)
	case actionClear:
		store.ClearFilters()
	case actionQuit:
		return false
	}
	return true
}

// browseOptions lists the actions available for the store's current
// state: page navigation first, then every filter control.
func browseOptions(store *catalog.Store, lang string) []huh.Option[browseAction] {
	var opts []huh.Option[browseAction]

	page, total := store.Page(), store.TotalPages()
	if page < total && page >= 1 {
		opts = append(opts, huh.NewOption(fmt.Sprintf("Next page (%d)", page+1), browseAction{Kind: actionPage, Page: page + 1}))
	}
	if page > 1 && page <= total {
		opts = append(opts, huh.NewOption(fmt.Sprintf("Previous page (%d)", page-1), browseAction{Kind: actionPage, Page: page - 1}))
	}

	filters := store.Filters()
	for _, g := range ui.Controls(store.Topics(), lang) {
		for _, c := range g.Controls {
			if c.Binding.Active(filters) {
				continue
			}
			label := fmt.Sprintf("%s: %s", g.Title, c.Label)
			opts = append(opts, huh.NewOption(label, browseAction{Kind: actionFilter, Binding: c.Binding}))
		}
	}

	opts = append(opts, huh.NewOption("Search…", browseAction{Kind: actionSearch}))
	if !filters.IsDefault() {
		opts = append(opts, huh.NewOption("Clear filters", browseAction{Kind: actionClear}))
	}
	opts = append(opts, huh.NewOption("Quit", browseAction{Kind: actionQuit}))
	return opts
}

func (cmd *BrowseCmd) Run(g *Globals) error {
	store := g.newStore()
	groups := ui.Controls(store.Topics(), g.Config.Lang)

	for {
		fmt.Fprint(g.Out, ui.RenderFilterBar(groups, store.Filters()))
		renderCatalog(g, store)

		var choice browseAction
		err := huh.NewForm(huh.NewGroup(
			huh.NewSelect[browseAction]().
				Title("Action").
				Options(browseOptions(store, g.Config.Lang)...).
				Value(&choice),
		)).WithTheme(ui.BrowseTheme()).Run()
		if err != nil {
			return handleFormError(err)
		}

		var search string
		if choice.Kind == actionSearch {
			search = store.Filters().Search
			err := huh.NewForm(huh.NewGroup(
				huh.NewInput().
					Title("Search").
					Description("Matches title, description and tags").
					Value(&search),
			)).WithTheme(ui.BrowseTheme()).Run()
			if err != nil {
				return handleFormError(err)
			}
			search = strings.TrimSpace(search)
		}

		if !applyAction(store, choice, search) {
			return nil
		}
		fmt.Fprintln(g.Out)
	}
}

func handleFormError(err error) error {
	if errors.Is(err, huh.ErrUserAborted) {
		return nil
	}
	return err
}
