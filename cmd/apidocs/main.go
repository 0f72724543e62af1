package main

import (
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/apidocs/cmd/apidocs/commands"
	foundationerrors "git.home.luguber.info/inful/apidocs/internal/foundation/errors"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	cli := &commands.CLI{}
	parser := kong.Parse(cli,
		kong.Name("apidocs"),
		kong.Description("Render versioned API reference metadata for a documentation site."),
		kong.UsageOnError(),
		kong.Vars{"version": version},
	)

	global := commands.NewGlobal(os.Stdout)
	err := parser.Run(global, cli)
	adapter := foundationerrors.NewCLIErrorAdapter(cli.Verbose, global.Logger)
	os.Exit(adapter.HandleError(err))
}
