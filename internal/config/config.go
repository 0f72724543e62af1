// Package config loads the apidocs YAML configuration. Loading runs in a
// fixed order: .env files, environment expansion, decoding, normalization,
// defaults and finally validation.
package config

import (
	"bytes"
	"log/slog"
	"os"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	foundationerrors "git.home.luguber.info/inful/apidocs/internal/foundation/errors"
)

// CurrentVersion is the only configuration format version accepted.
const CurrentVersion = "1"

// Config is the root configuration document.
type Config struct {
	Version   string          `yaml:"version"`
	Site      SiteConfig      `yaml:"site"`
	Metadata  MetadataConfig  `yaml:"metadata"`
	Markdown  MarkdownConfig  `yaml:"markdown"`
	Output    OutputConfig    `yaml:"output"`
	Server    ServerConfig    `yaml:"server"`
	Logging   LoggingConfig   `yaml:"logging"`
	Generator GeneratorConfig `yaml:"generator"`
}

// SiteConfig describes the documented versions and where pages live.
type SiteConfig struct {
	// BasePath prefixes every resolved link. Always ends with "/".
	BasePath string `yaml:"base_path"`
	// Versions in declaration order; the first is the default.
	Versions   []string `yaml:"versions"`
	SortLocale string   `yaml:"sort_locale"`
}

// Locale returns the parsed sort locale, or English when unset or invalid.
func (s SiteConfig) Locale() language.Tag {
	tag, err := language.Parse(s.SortLocale)
	if err != nil {
		return language.English
	}
	return tag
}

// MetadataConfig locates the generator output.
type MetadataConfig struct {
	Dir string `yaml:"dir"`
}

// MarkdownConfig configures the markdown engine.
type MarkdownConfig struct {
	Extensions []string `yaml:"extensions"`
	Unsafe     bool     `yaml:"unsafe"`
	HardWraps  bool     `yaml:"hard_wraps"`
}

// OutputConfig configures snapshot output.
type OutputConfig struct {
	Dir         string      `yaml:"dir"`
	Precompress Precompress `yaml:"precompress"`
	Concurrency int         `yaml:"concurrency"`
}

// ServerConfig configures the development server.
type ServerConfig struct {
	Addr    string `yaml:"addr"`
	Metrics bool   `yaml:"metrics"`
	Watch   bool   `yaml:"watch"`
}

// LoggingConfig selects the slog handler.
type LoggingConfig struct {
	Level  LogLevel  `yaml:"level"`
	Format LogFormat `yaml:"format"`
}

// GeneratorConfig describes the external metadata generator.
type GeneratorConfig struct {
	Command string   `yaml:"command"`
	Args    []string `yaml:"args"`
	Inputs  []string `yaml:"inputs"`
	Dir     string   `yaml:"dir"`
}

// Load reads, normalizes, defaults and validates the configuration at path.
func Load(path string) (*Config, error) {
	loadEnvFiles()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, foundationerrors.ConfigError("configuration file not found").
				WithContext("path", path).
				Build()
		}
		return nil, foundationerrors.FileSystemError("failed to read configuration file").
			WithCause(err).
			WithContext("path", path).
			Build()
	}
	cfg, err := Parse(data)
	if err != nil {
		if classified, ok := foundationerrors.AsClassified(err); ok {
			classified.Context().Set("path", path)
		}
		return nil, err
	}
	return cfg, nil
}

// Parse decodes configuration bytes after expanding environment variables,
// then normalizes, defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader([]byte(expanded)))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return nil, foundationerrors.ConfigError("failed to parse configuration").WithCause(err).Build()
	}
	if cfg.Version != CurrentVersion {
		return nil, foundationerrors.ConfigError("unsupported configuration version").
			WithContext("version", cfg.Version).
			WithContext("expected", CurrentVersion).
			Build()
	}

	warnings, err := Normalize(&cfg)
	if err != nil {
		return nil, err
	}
	for _, w := range warnings {
		slog.Warn("Configuration normalized", slog.String("detail", w))
	}
	ApplyDefaults(&cfg)
	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
