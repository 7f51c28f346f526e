package main

import (
	"fmt"

	"chall/internal/present"
)

type ShowCmd struct {
	Query string `arg:"" help:"Challenge ID or search text"`
	URL   bool   `name:"url" help:"Output only the write-up URL (for scripting)"`
}

func (cmd *ShowCmd) Run(g *Globals) error {
	entry, err := findEntry(g.newStore(), cmd.Query)
	if err != nil {
		if handleFindError(g.Out, err) {
			return nil
		}
		return err
	}

	if cmd.URL {
		fmt.Fprintln(g.Out, entry.URL)
		return nil
	}

	fmt.Fprintln(g.Out, g.Render.RenderCard(present.NewCard(entry, g.Config.Lang)))
	return nil
}
