package main

import (
	"fmt"

	"chall/internal/config"
	"chall/internal/prefs"
	"chall/internal/ui"
)

type ThemeCmd struct {
	Toggle bool   `help:"Switch between light and dark"`
	Set    string `help:"Set the theme (light, dark)"`
}

func (cmd *ThemeCmd) Run(g *Globals) error {
	theme := g.Prefs.Load()

	switch {
	case cmd.Set != "":
		t, err := prefs.ParseTheme(cmd.Set)
		if err != nil {
			return err
		}
		if err := g.Prefs.Save(t); err != nil {
			return err
		}
		theme = t
	case cmd.Toggle:
		t, err := g.Prefs.Toggle()
		if err != nil {
			return err
		}
		theme = t
	}

	fmt.Fprint(g.Out, ui.RenderReport("Theme: "+string(theme), config.ShortenPath(g.Prefs.Path()), nil))
	return nil
}
