package commands

import (
	"git.home.luguber.info/inful/apidocs/internal/server"
	"git.home.luguber.info/inful/apidocs/internal/site"
)

// ServeCmd implements the 'serve' command.
type ServeCmd struct {
	Addr      string `short:"a" help:"Listen address (overrides server.addr)"`
	Watch     bool   `help:"Reload metadata when files change, regardless of server.watch" xor:"watch"`
	NoWatch   bool   `name:"no-watch" help:"Never reload metadata" xor:"watch"`
	NoMetrics bool   `name:"no-metrics" help:"Do not expose /metrics, regardless of server.metrics"`
}

func (s *ServeCmd) Run(g *Global, root *CLI) error {
	cfg, err := loadConfig(g, root)
	if err != nil {
		return err
	}
	if s.Addr != "" {
		cfg.Server.Addr = s.Addr
	}
	switch {
	case s.Watch:
		cfg.Server.Watch = true
	case s.NoWatch:
		cfg.Server.Watch = false
	}
	if s.NoMetrics {
		cfg.Server.Metrics = false
	}

	recorder, registry := newRecorder(cfg.Server.Metrics)
	initial, err := loadSite(cfg, recorder)
	if err != nil {
		return err
	}
	srv := server.New(initial, server.Options{
		Addr:     cfg.Server.Addr,
		Registry: registry,
		Logger:   g.Logger,
	})

	ctx, cancel := signalContext()
	defer cancel()

	if cfg.Server.Watch {
		watcher, err := server.NewMetadataWatcher(cfg.Metadata.Dir, func() (*site.Site, error) {
			return loadSite(cfg, recorder)
		}, srv)
		if err != nil {
			return err
		}
		if err := watcher.Start(ctx); err != nil {
			return err
		}
		defer func() { _ = watcher.Stop() }()
	}

	return srv.Start(ctx)
}
