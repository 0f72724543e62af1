package config

// DefaultApplier fills defaults for one configuration section.
type DefaultApplier interface {
	ApplyDefaults(cfg *Config)
	Domain() string
}

// Default values.
const (
	DefaultBasePath    = "/"
	DefaultSortLocale  = "en"
	DefaultMetadataDir = "metadata"
	DefaultOutputDir   = "public/api"
	DefaultConcurrency = 4
	DefaultServerAddr  = "127.0.0.1:8090"
	DefaultExtension   = "gfm"
)

type siteDefaults struct{}

func (siteDefaults) Domain() string { return "site" }

func (siteDefaults) ApplyDefaults(cfg *Config) {
	if cfg.Site.BasePath == "" {
		cfg.Site.BasePath = DefaultBasePath
	}
	if cfg.Site.SortLocale == "" {
		cfg.Site.SortLocale = DefaultSortLocale
	}
}

type metadataDefaults struct{}

func (metadataDefaults) Domain() string { return "metadata" }

func (metadataDefaults) ApplyDefaults(cfg *Config) {
	if cfg.Metadata.Dir == "" {
		cfg.Metadata.Dir = DefaultMetadataDir
	}
}

type markdownDefaults struct{}

func (markdownDefaults) Domain() string { return "markdown" }

func (markdownDefaults) ApplyDefaults(cfg *Config) {
	if len(cfg.Markdown.Extensions) == 0 {
		cfg.Markdown.Extensions = []string{DefaultExtension}
	}
}

type outputDefaults struct{}

func (outputDefaults) Domain() string { return "output" }

func (outputDefaults) ApplyDefaults(cfg *Config) {
	if cfg.Output.Dir == "" {
		cfg.Output.Dir = DefaultOutputDir
	}
	if cfg.Output.Precompress == "" {
		cfg.Output.Precompress = PrecompressNone
	}
	if cfg.Output.Concurrency <= 0 {
		cfg.Output.Concurrency = DefaultConcurrency
	}
}

type serverDefaults struct{}

func (serverDefaults) Domain() string { return "server" }

func (serverDefaults) ApplyDefaults(cfg *Config) {
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = DefaultServerAddr
	}
}

type loggingDefaults struct{}

func (loggingDefaults) Domain() string { return "logging" }

func (loggingDefaults) ApplyDefaults(cfg *Config) {
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = LogLevelInfo
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = LogFormatText
	}
}

// DefaultAppliers lists the section appliers in application order.
func DefaultAppliers() []DefaultApplier {
	return []DefaultApplier{
		siteDefaults{},
		metadataDefaults{},
		markdownDefaults{},
		outputDefaults{},
		serverDefaults{},
		loggingDefaults{},
	}
}

// ApplyDefaults runs every section applier on cfg.
func ApplyDefaults(cfg *Config) {
	for _, a := range DefaultAppliers() {
		a.ApplyDefaults(cfg)
	}
}
