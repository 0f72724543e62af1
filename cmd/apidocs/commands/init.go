package commands

import (
	"fmt"

	"git.home.luguber.info/inful/apidocs/internal/config"
	"git.home.luguber.info/inful/apidocs/internal/logfields"
)

// InitCmd implements the 'init' command.
type InitCmd struct {
	Force bool `help:"Overwrite an existing configuration file"`
}

func (c *InitCmd) Run(g *Global, root *CLI) error {
	g.Logger.Info("Initializing configuration", logfields.Path(root.Config), "force", c.Force)
	if err := config.Init(root.Config, c.Force); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(g.Out, "Wrote %s\n", root.Config)
	return nil
}
