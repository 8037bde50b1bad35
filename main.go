package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli"

	"github.com/envexport/secrets-to-env/clicommand"
	"github.com/envexport/secrets-to-env/version"
)

const appHelpTemplate = `Usage:

  {{.Name}} <command> [options...]

Available commands are:

  {{range .Commands}}{{.Name}}{{with .ShortName}}, {{.}}{{end}}{{ "\t" }}{{.Usage}}
  {{end}}
Use "{{.Name}} <command> --help" for more information about a command.
`

func main() {
	os.Exit(run())
}

func run() int {
	cli.AppHelpTemplate = appHelpTemplate

	app := cli.NewApp()
	app.Name = "secrets-to-env"
	app.Version = version.FullVersion()
	app.Usage = "Publish CI secrets and variables as environment variables"
	app.Commands = clicommand.Commands
	app.ErrWriter = os.Stderr

	// When no sub command is used
	app.Action = func(c *cli.Context) error {
		_ = cli.ShowAppHelp(c)
		return clicommand.NewSilentExitError(1)
	}

	// When a sub command can't be found
	app.CommandNotFound = func(c *cli.Context, command string) {
		fmt.Fprintf(c.App.ErrWriter, "%s: %q is not a %s command. See %q.\n", c.App.Name, command, c.App.Name, c.App.Name+" --help")
		os.Exit(1)
	}

	return clicommand.PrintMessageAndReturnExitCode(app.Run(os.Args))
}
