package main

import (
	"context"
	"fmt"
	"slices"

	"chall/internal/config"
	"chall/internal/fragment"
	"chall/internal/surface"
	"chall/internal/ui"
)

type FragmentsCmd struct {
	Print bool `help:"Print the loaded content of every section"`
}

func (cmd *FragmentsCmd) Run(g *Globals) error {
	fetcher, err := newFetcher(g.Config)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), g.Config.Fragments.Timeout+fragment.DefaultTimeout)
	defer cancel()

	mem := surface.NewMemory()
	loader := fragment.NewLoader(fetcher, mem, fragment.WithLogger(g.Logger))
	preloaded := loader.Preload(ctx, g.Config.Fragments.Preload)
	res := loader.LoadBatch(ctx, sections(g.Config))
	<-preloaded

	regions := make([]surface.Region, 0, len(g.Config.Fragments.Sections))
	for region := range sections(g.Config) {
		regions = append(regions, region)
	}
	slices.Sort(regions)

	checks := make([]ui.Check, len(regions))
	for i, region := range regions {
		if loadErr, failed := res.Failed[region]; failed {
			checks[i] = ui.Check{Text: loadErr.Error()}
		} else {
			checks[i] = ui.Check{OK: true, Text: string(region)}
		}
	}
	fmt.Fprint(g.Out, ui.RenderReport("Fragments", fragmentSource(g.Config), checks))

	if cmd.Print {
		for _, region := range regions {
			fmt.Fprintf(g.Out, "\n# %s\n%s\n", region, mem.Content(region))
		}
	}
	return res.Err()
}

func fragmentSource(cfg *config.Config) string {
	if cfg.Fragments.BaseURL != "" {
		return cfg.Fragments.BaseURL
	}
	return config.ShortenPath(cfg.Fragments.Dir)
}
