package config

import (
	"fmt"
	"strings"

	foundationerrors "git.home.luguber.info/inful/apidocs/internal/foundation/errors"
)

// Normalize canonicalizes enum spellings and path forms in place. It returns
// human-readable notes for every value it changed. Unknown enum values are
// validation errors.
func Normalize(cfg *Config) ([]string, error) {
	var warnings []string
	note := func(field, from, to string) {
		if from != to && from != "" {
			warnings = append(warnings, fmt.Sprintf("normalized %s from %q to %q", field, from, to))
		}
	}

	level, err := logLevels.Parse(string(cfg.Logging.Level))
	if err != nil {
		return nil, invalidEnum("logging.level", err)
	}
	note("logging.level", string(cfg.Logging.Level), string(level))
	cfg.Logging.Level = level

	format, err := logFormats.Parse(string(cfg.Logging.Format))
	if err != nil {
		return nil, invalidEnum("logging.format", err)
	}
	note("logging.format", string(cfg.Logging.Format), string(format))
	cfg.Logging.Format = format

	mode, err := precompressModes.Parse(string(cfg.Output.Precompress))
	if err != nil {
		return nil, invalidEnum("output.precompress", err)
	}
	note("output.precompress", string(cfg.Output.Precompress), string(mode))
	cfg.Output.Precompress = mode

	for i, ext := range cfg.Markdown.Extensions {
		clean := strings.ToLower(strings.TrimSpace(ext))
		note(fmt.Sprintf("markdown.extensions[%d]", i), ext, clean)
		cfg.Markdown.Extensions[i] = clean
	}
	for i, v := range cfg.Site.Versions {
		cfg.Site.Versions[i] = strings.TrimSpace(v)
	}

	if bp := strings.TrimSpace(cfg.Site.BasePath); bp != "" {
		normalized := normalizeBasePath(bp)
		note("site.base_path", cfg.Site.BasePath, normalized)
		cfg.Site.BasePath = normalized
	}
	return warnings, nil
}

// normalizeBasePath ensures a trailing slash, and a leading slash for
// site-relative paths.
func normalizeBasePath(bp string) string {
	if !strings.Contains(bp, "://") && !strings.HasPrefix(bp, "/") {
		bp = "/" + bp
	}
	if !strings.HasSuffix(bp, "/") {
		bp += "/"
	}
	return bp
}

func invalidEnum(field string, err error) error {
	return foundationerrors.ValidationError("invalid configuration value").
		WithCause(err).
		WithContext("field", field).
		Build()
}
