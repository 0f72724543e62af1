// Package commands implements the apidocs CLI commands.
package commands

import (
	"context"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/apidocs/internal/config"
	"git.home.luguber.info/inful/apidocs/internal/logfields"
	"git.home.luguber.info/inful/apidocs/internal/markdown"
	"git.home.luguber.info/inful/apidocs/internal/metrics"
	"git.home.luguber.info/inful/apidocs/internal/site"
)

// Global carries state shared by every command.
type Global struct {
	Logger *slog.Logger
	// Out receives user-facing command output.
	Out io.Writer
}

// NewGlobal creates the shared state, writing command output to out.
func NewGlobal(out io.Writer) *Global {
	return &Global{Logger: slog.Default(), Out: out}
}

// CLI is the root command with its global flags.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path" default:"apidocs.yaml" type:"path"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Build    BuildCmd    `cmd:"" help:"Render every type of every version into JSON snapshots"`
	Serve    ServeCmd    `cmd:"" help:"Serve rendered metadata over HTTP for local development"`
	Generate GenerateCmd `cmd:"" help:"Run the external metadata generator"`
	Resolve  ResolveCmd  `cmd:"" help:"Resolve key-paths to link targets"`
	Init     InitCmd     `cmd:"" help:"Write an example configuration file"`
}

// AfterApply runs after flag parsing and installs a provisional logger.
// The configured handler replaces it once a command loads configuration.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply() error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	return nil
}

// loadConfig loads the configuration named by the global flag and switches
// logging to the configured level and format. --verbose wins over the file.
func loadConfig(g *Global, root *CLI) (*config.Config, error) {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return nil, err
	}
	g.Logger = newLogger(cfg.Logging, root.Verbose)
	slog.SetDefault(g.Logger)
	g.Logger.Debug("Loaded configuration", logfields.Path(root.Config))
	return cfg, nil
}

func newLogger(lc config.LoggingConfig, verbose bool) *slog.Logger {
	level := lc.Level.SlogLevel()
	if verbose {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}
	if lc.Format == config.LogFormatJSON {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}

// siteOptions translates configuration into Site options.
func siteOptions(cfg *config.Config, recorder metrics.Recorder) site.Options {
	return site.Options{
		BasePath: cfg.Site.BasePath,
		Locale:   cfg.Site.Locale(),
		Markdown: markdown.Options{
			Extensions: cfg.Markdown.Extensions,
			Unsafe:     cfg.Markdown.Unsafe,
			HardWraps:  cfg.Markdown.HardWraps,
		},
		Recorder: recorder,
	}
}

// loadSite reads the configured metadata directory into a fresh Site.
func loadSite(cfg *config.Config, recorder metrics.Recorder) (*site.Site, error) {
	return site.Load(cfg.Metadata.Dir, cfg.Site.Versions, siteOptions(cfg, recorder))
}

// newRecorder returns a Prometheus-backed recorder and its registry when
// metrics are enabled, and a no-op recorder otherwise.
func newRecorder(enabled bool) (metrics.Recorder, *prom.Registry) {
	if !enabled {
		return metrics.NoopRecorder{}, nil
	}
	reg := prom.NewRegistry()
	return metrics.NewPrometheusRecorder(reg), reg
}

// signalContext returns a context canceled on SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}
