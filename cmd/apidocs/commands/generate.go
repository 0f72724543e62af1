package commands

import (
	"git.home.luguber.info/inful/apidocs/internal/generator"
)

// GenerateCmd implements the 'generate' command.
type GenerateCmd struct {
	Build bool `help:"Build snapshots after a successful generator run"`
}

func (c *GenerateCmd) Run(g *Global, root *CLI) error {
	cfg, err := loadConfig(g, root)
	if err != nil {
		return err
	}
	runner := generator.Runner{
		Command: cfg.Generator.Command,
		Args:    cfg.Generator.Args,
		Inputs:  cfg.Generator.Inputs,
		Dir:     cfg.Generator.Dir,
		Logger:  g.Logger,
	}
	ctx, cancel := signalContext()
	defer cancel()
	if _, err := runner.Run(ctx); err != nil {
		return err
	}
	if !c.Build {
		return nil
	}
	return (&BuildCmd{}).Run(g, root)
}
