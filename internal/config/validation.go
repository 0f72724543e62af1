package config

import (
	"errors"
	"slices"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"golang.org/x/text/language"

	foundationerrors "git.home.luguber.info/inful/apidocs/internal/foundation/errors"
	"git.home.luguber.info/inful/apidocs/internal/markdown"
)

// Validate checks cfg after normalization and defaults. Failures are
// validation errors whose context maps each offending field to its message.
func Validate(cfg *Config) error {
	err := validation.Errors{
		"site":     validateSite(cfg.Site),
		"markdown": validateMarkdown(cfg.Markdown),
		"output":   validateOutput(cfg.Output),
		"server":   validateServer(cfg.Server),
		"logging":  validateLogging(cfg.Logging),
	}.Filter()
	if err == nil {
		return nil
	}

	builder := foundationerrors.ValidationError("configuration validation failed").WithCause(err)
	var fields validation.Errors
	if errors.As(err, &fields) {
		for section, fieldErr := range fields {
			builder = builder.WithContext(section, fieldErr.Error())
		}
	}
	return builder.Build()
}

func validateSite(s SiteConfig) error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.Versions,
			validation.Required.Error("at least one version must be declared"),
			validation.By(uniqueVersions)),
		validation.Field(&s.BasePath, validation.Required, validation.By(func(value any) error {
			if !strings.HasSuffix(value.(string), "/") {
				return validation.NewError("config.site.base_path_slash", "must end with /")
			}
			return nil
		})),
		validation.Field(&s.SortLocale, validation.By(func(value any) error {
			if _, err := language.Parse(value.(string)); err != nil {
				return validation.NewError("config.site.sort_locale", "must be a BCP 47 language tag")
			}
			return nil
		})),
	)
}

func uniqueVersions(value any) error {
	versions, _ := value.([]string)
	seen := make(map[string]bool, len(versions))
	for _, v := range versions {
		if v == "" {
			return validation.NewError("config.site.version_empty", "versions must not be empty")
		}
		if seen[v] {
			return validation.NewError("config.site.version_duplicate", "duplicate version "+v)
		}
		seen[v] = true
	}
	return nil
}

func validateMarkdown(m MarkdownConfig) error {
	known := markdown.ExtensionNames()
	return validation.ValidateStruct(&m,
		validation.Field(&m.Extensions, validation.Each(validation.By(func(value any) error {
			if !slices.Contains(known, value.(string)) {
				return validation.NewError("config.markdown.extension", "unknown extension, valid options: "+strings.Join(known, ", "))
			}
			return nil
		}))),
	)
}

func validateOutput(o OutputConfig) error {
	return validation.ValidateStruct(&o,
		validation.Field(&o.Dir, validation.Required),
		validation.Field(&o.Precompress, validation.By(func(value any) error {
			if !precompressModes.Contains(value.(Precompress)) {
				return validation.NewError("config.output.precompress", "must be one of "+strings.Join(precompressModes.Keys(), ", "))
			}
			return nil
		})),
		validation.Field(&o.Concurrency, validation.Min(1)),
	)
}

func validateServer(s ServerConfig) error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.Addr, validation.Required),
	)
}

func validateLogging(l LoggingConfig) error {
	return validation.ValidateStruct(&l,
		validation.Field(&l.Level, validation.In(LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError)),
		validation.Field(&l.Format, validation.In(LogFormatJSON, LogFormatText)),
	)
}
