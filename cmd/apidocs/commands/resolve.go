package commands

import (
	"fmt"

	foundationerrors "git.home.luguber.info/inful/apidocs/internal/foundation/errors"
	"git.home.luguber.info/inful/apidocs/internal/metrics"
)

// ResolveCmd implements the 'resolve' command.
type ResolveCmd struct {
	KeyPaths []string `arg:"" name:"key-path" help:"Key-paths such as Type or Type.member, optionally prefixed with <version>/"`
	From     string   `short:"f" help:"Version the references appear in (default: the default version)"`
}

func (c *ResolveCmd) Run(g *Global, root *CLI) error {
	cfg, err := loadConfig(g, root)
	if err != nil {
		return err
	}
	s, err := loadSite(cfg, metrics.NoopRecorder{})
	if err != nil {
		return err
	}
	linkVersion := s.Store().LinkVersion(c.From)
	if c.From != "" && !s.Store().HasVersion(c.From) {
		return foundationerrors.ValidationError("unknown version").
			WithContext("version", c.From).
			Build()
	}

	var unresolved []string
	for _, keyPath := range c.KeyPaths {
		target, ok := s.ResolveLink(keyPath, linkVersion)
		if !ok {
			unresolved = append(unresolved, keyPath)
			_, _ = fmt.Fprintf(g.Out, "%s\t(unresolved)\n", keyPath)
			continue
		}
		_, _ = fmt.Fprintf(g.Out, "%s\t%s\n", target.Name, target.Path)
	}
	if len(unresolved) > 0 {
		return foundationerrors.NotFoundError("some key-paths did not resolve").
			WithContext("key_paths", unresolved).
			Build()
	}
	return nil
}
