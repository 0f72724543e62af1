package commands

import (
	"fmt"
	"time"

	"git.home.luguber.info/inful/apidocs/internal/config"
	"git.home.luguber.info/inful/apidocs/internal/logfields"
	"git.home.luguber.info/inful/apidocs/internal/metrics"
	"git.home.luguber.info/inful/apidocs/internal/site"
)

// BuildCmd implements the 'build' command.
type BuildCmd struct {
	Output      string `short:"o" help:"Output directory (overrides output.dir)"`
	Metadata    string `short:"m" help:"Metadata directory (overrides metadata.dir)"`
	Precompress string `help:"Compressed siblings to write: none, gzip or zstd (overrides output.precompress)"`
}

func (b *BuildCmd) Run(g *Global, root *CLI) error {
	cfg, err := loadConfig(g, root)
	if err != nil {
		return err
	}
	if b.Output != "" {
		cfg.Output.Dir = b.Output
	}
	if b.Metadata != "" {
		cfg.Metadata.Dir = b.Metadata
	}
	if b.Precompress != "" {
		cfg.Output.Precompress = config.Precompress(b.Precompress)
	}

	ctx, cancel := signalContext()
	defer cancel()

	start := time.Now()
	s, err := loadSite(cfg, metrics.NoopRecorder{})
	if err != nil {
		return err
	}
	manifest, err := s.WriteSnapshots(ctx, cfg.Output.Dir, site.SnapshotOptions{
		Precompress: site.Precompress(cfg.Output.Precompress),
		Concurrency: cfg.Output.Concurrency,
	})
	if err != nil {
		return err
	}

	// The manifest does not list itself.
	written := len(manifest.Files) + 1
	g.Logger.Info("Build completed",
		logfields.Path(cfg.Output.Dir),
		logfields.Count(written),
		logfields.Duration(time.Since(start)))
	_, _ = fmt.Fprintf(g.Out, "Wrote %d files for %d versions to %s (build %s)\n",
		written, len(manifest.Versions), cfg.Output.Dir, manifest.BuildID)
	return nil
}
