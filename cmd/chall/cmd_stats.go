package main

import (
	"chall/internal/present"
	"chall/internal/surface"

	lipglossv2 "charm.land/lipgloss/v2"
)

type StatsCmd struct{}

func (cmd *StatsCmd) Run(g *Globals) error {
	store := g.newStore()
	p := present.New(store, surface.NewMemory(), g.Render, present.WithLang(g.Config.Lang))
	summary := p.RenderStats(store.Statistics())

	_, err := lipglossv2.Fprint(g.Out, g.Render.RenderSummary(summary))
	return err
}
