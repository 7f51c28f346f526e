package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"chall/internal/fragment"
	"chall/internal/server"

	"go.uber.org/zap"
)

type ServeCmd struct {
	Addr  string `help:"Listen address (overrides server.addr)"`
	Watch bool   `help:"Clear the fragment cache when files under fragments.dir change"`
}

func (cmd *ServeCmd) newServer(g *Globals) (*server.Server, error) {
	addr := g.Config.Server.Addr
	if cmd.Addr != "" {
		addr = cmd.Addr
	}

	opts := []server.Option{server.WithLogger(g.Logger)}
	if g.Config.FragmentsEnabled() {
		fetcher, err := newFetcher(g.Config)
		if err != nil {
			return nil, err
		}
		opts = append(opts, server.WithFragments(fetcher))
	}

	return server.New(server.Config{
		Addr:     addr,
		PageSize: g.Config.PageSize,
		Lang:     g.Config.Lang,
		Sections: sections(g.Config),
		Preload:  g.Config.Fragments.Preload,
	}, g.Entries, g.Prefs, opts...)
}

func (cmd *ServeCmd) Run(g *Globals) error {
	if cmd.Watch && g.Config.Fragments.Dir == "" {
		return errors.New("--watch requires fragments.dir")
	}

	srv, err := cmd.newServer(g)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv.Preload(ctx)
	if cmd.Watch {
		go func() {
			if err := fragment.Watch(ctx, g.Config.Fragments.Dir, srv.Cache(), g.Logger); err != nil {
				g.Logger.Warn("fragment watcher stopped", zap.Error(err))
			}
		}()
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	g.Logger.Info("shutting down")
	return srv.Shutdown(shutdownCtx)
}
