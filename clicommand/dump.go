package clicommand

import (
	"encoding/json"
	"fmt"
	"os"
	"slices"

	"github.com/urfave/cli"

	"github.com/envexport/secrets-to-env/env"
)

const dumpHelpDescription = `Usage:

    secrets-to-env dump [options]

Description:

Prints out the environment of the current process as a JSON object, easily
parsable by other programs. Useful for debugging what a preceding export
step actually published.

Example:

    $ secrets-to-env dump --format json-pretty`

type DumpConfig struct {
	GlobalConfig

	Format string `cli:"format"`
}

var DumpCommand = cli.Command{
	Name:        "dump",
	Usage:       "Print the environment of the current process as a JSON object",
	Description: dumpHelpDescription,
	Flags: slices.Concat(globalFlags(), []cli.Flag{
		cli.StringFlag{
			Name:   "format",
			Usage:  "Output format; json or json-pretty",
			EnvVar: "SECRETS_TO_ENV_DUMP_FORMAT",
			Value:  "json",
		},
	}),
	Action: func(c *cli.Context) error {
		cfg, _ := setupLoggerAndConfig[DumpConfig](c)

		envMap := env.FromSlice(os.Environ()).Dump()

		enc := json.NewEncoder(c.App.Writer)
		if cfg.Format == "json-pretty" {
			enc.SetIndent("", "  ")
		}

		if err := enc.Encode(envMap); err != nil {
			return fmt.Errorf("error marshalling JSON: %w", err)
		}

		return nil
	},
}
