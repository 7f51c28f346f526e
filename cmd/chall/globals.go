package main

import (
	"io"
	"os"
	"os/exec"
	"runtime"

	"chall/cmd/chall/render"
	"chall/internal/catalog"
	"chall/internal/config"
	"chall/internal/prefs"

	"go.uber.org/zap"
)

type Globals struct {
	Config  *config.Config
	Entries []catalog.Entry
	Source  *catalog.YAMLSource
	Prefs   *prefs.Store
	Logger  *zap.Logger
	Out     io.Writer
	Render  render.Renderer
	RunCmd  func(name string, args ...string) error
}

func (g *Globals) newStore() *catalog.Store {
	return catalog.NewStore(g.Entries, catalog.WithPageSize(g.Config.PageSize))
}

func (g *Globals) runCmd(name string, args ...string) error {
	if g.RunCmd != nil {
		return g.RunCmd(name, args...)
	}
	return defaultRunCmd(name, args...)
}

func defaultRunCmd(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

// openerCommand returns the platform command that opens target in the
// default browser.
func openerCommand(goos, target string) (string, []string) {
	switch goos {
	case "darwin":
		return "open", []string{target}
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler", target}
	default:
		return "xdg-open", []string{target}
	}
}

var currentOS = runtime.GOOS
