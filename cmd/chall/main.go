package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"chall/cmd/chall/render"
	"chall/internal/catalog"
	"chall/internal/config"
	"chall/internal/logging"
	"chall/internal/prefs"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"
)

type CLI struct {
	List      ListCmd      `cmd:"" aliases:"ls" help:"List challenges"`
	Show      ShowCmd      `cmd:"" help:"Show challenge details"`
	Open      OpenCmd      `cmd:"" aliases:"o" help:"Open a challenge write-up in the browser"`
	Stats     StatsCmd     `cmd:"" help:"Show catalog statistics"`
	Browse    BrowseCmd    `cmd:"" aliases:"b" help:"Browse challenges interactively"`
	Fragments FragmentsCmd `cmd:"" help:"Load the configured content fragments"`
	Theme     ThemeCmd     `cmd:"" help:"Show or change the theme preference"`
	Serve     ServeCmd     `cmd:"" help:"Serve the challenge site over HTTP"`
	Export    ExportCmd    `cmd:"" help:"Write the dataset to a YAML file"`

	ConfigPath  string `name:"config" short:"c" help:"Path to config file"`
	DatasetPath string `name:"dataset" short:"d" help:"Path to dataset file"`
}

func (c *CLI) AfterApply(ctx *kong.Context) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load .env: %w", err)
	}

	configPath := c.ConfigPath
	if configPath == "" {
		configPath = config.DefaultConfigPath()
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if c.DatasetPath != "" {
		if cfg.Dataset, err = config.ExpandPath(c.DatasetPath); err != nil {
			return err
		}
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	source := catalog.NewYAMLSource(cfg.Dataset)
	entries, err := source.Load()
	if err != nil {
		return fmt.Errorf("failed to load dataset: %w", err)
	}

	globals := &Globals{
		Config:  cfg,
		Entries: entries,
		Source:  source,
		Prefs:   prefs.NewStore(cfg.PrefsPath),
		Logger:  logging.New(cfg.LogLevel, os.Stderr),
		Out:     os.Stdout,
		Render:  render.NewLipglossRendererAuto(os.Stdout).WithLang(cfg.Lang),
	}
	ctx.Bind(globals)
	return nil
}

func main() {
	cli := CLI{}
	ctx := kong.Parse(&cli,
		kong.Name("chall"),
		kong.Description("Coding challenge catalog browser"),
		kong.UsageOnError(),
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
