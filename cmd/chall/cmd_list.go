package main

import (
	"fmt"

	"chall/internal/catalog"
)

type ListCmd struct {
	Difficulty string `short:"D" default:"all" help:"Difficulty filter (all, easy, medium, hard)"`
	Topic      string `short:"t" default:"all" help:"Topic filter"`
	Search     string `short:"s" help:"Case-insensitive search over title, description and tags"`
	Page       int    `short:"p" default:"1" help:"Page number"`
	IDs        bool   `name:"ids" help:"Output only matching challenge IDs (one per line)"`
}

func (cmd *ListCmd) apply(store *catalog.Store) {
	if cmd.Difficulty != "" {
		store.Apply(catalog.Binding{Kind: catalog.FilterDifficulty, Value: cmd.Difficulty})
	}
	if cmd.Topic != "" {
		store.Apply(catalog.Binding{Kind: catalog.FilterTopic, Value: cmd.Topic})
	}
	store.SetSearch(cmd.Search)
	store.GoToPage(cmd.Page)
}

func (cmd *ListCmd) Run(g *Globals) error {
	store := g.newStore()
	cmd.apply(store)

	if cmd.IDs {
		for _, e := range store.Filtered() {
			fmt.Fprintln(g.Out, e.ID)
		}
		return nil
	}

	renderCatalog(g, store)
	return nil
}
