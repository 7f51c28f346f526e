package main

import (
	"fmt"

	"chall/internal/catalog"
	"chall/internal/config"
)

type ExportCmd struct {
	Path string `arg:"" help:"Destination YAML file"`
}

func (cmd *ExportCmd) Run(g *Globals) error {
	path, err := config.ExpandPath(cmd.Path)
	if err != nil {
		return err
	}
	if err := catalog.NewYAMLSource(path).Save(g.Entries); err != nil {
		return fmt.Errorf("failed to export dataset: %w", err)
	}
	fmt.Fprintf(g.Out, "Exported %d challenges to %s\n", len(g.Entries), config.ShortenPath(path))
	return nil
}
