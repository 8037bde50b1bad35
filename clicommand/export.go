package clicommand

import (
	"slices"

	"github.com/urfave/cli"

	"github.com/envexport/secrets-to-env/env"
	"github.com/envexport/secrets-to-env/internal/envexport"
	"github.com/envexport/secrets-to-env/logger"
)

const exportHelpDescription = `Usage:

    secrets-to-env export [options...]

Description:

Reads the secrets and vars inputs (each a JSON object of names to values),
applies the configured filtering, prefix manipulation and case conversion to
every name, resolves collisions between the two sources, and exports the
result as environment variables for subsequent pipeline steps.

Every option is also read from its ′INPUT_*′ environment variable, so the
command runs unchanged as a GitHub Actions step:

    - uses: ./
      with:
        secrets: ${{ toJSON(secrets) }}
        vars: ${{ toJSON(vars) }}

Examples:

    # Export every secret as-is
    $ secrets-to-env export --secrets "$SECRETS_JSON"

    # Strip an app prefix and upper-case what remains
    $ secrets-to-env export --secrets "$SECRETS_JSON" --remove-prefix MYAPP_ --convert upper

    # Fail the build if a secret and a var map to the same name
    $ secrets-to-env export --secrets "$SECRETS_JSON" --vars "$VARS_JSON" --on-collision error`

type ExportConfig struct {
	GlobalConfig

	Secrets       string   `cli:"secrets" validate:"required" label:"secrets input"`
	Vars          string   `cli:"vars"`
	Prefix        string   `cli:"prefix"`
	RemovePrefix  string   `cli:"remove-prefix"`
	Include       []string `cli:"include" normalize:"list"`
	Exclude       []string `cli:"exclude" normalize:"list"`
	Convert       string   `cli:"convert"`
	ConvertPrefix bool     `cli:"convert-prefix"`
	Override      bool     `cli:"override"`
	OnCollision   string   `cli:"on-collision"`
	DryRun        bool     `cli:"dry-run"`
}

var ExportCommand = cli.Command{
	Name:        "export",
	Usage:       "Export secrets and vars as environment variables",
	Description: exportHelpDescription,
	Flags: slices.Concat(globalFlags(), []cli.Flag{
		cli.StringFlag{
			Name:   "secrets",
			Usage:  "A JSON object of secret names to values, e.g. ${{ toJSON(secrets) }}",
			EnvVar: "INPUT_SECRETS",
		},
		cli.StringFlag{
			Name:   "vars",
			Usage:  "A JSON object of variable names to values, e.g. ${{ toJSON(vars) }}",
			EnvVar: "INPUT_VARS",
		},
		cli.StringFlag{
			Name:   "prefix",
			Usage:  "A prefix to prepend to every exported variable name",
			EnvVar: "INPUT_PREFIX",
		},
		cli.StringFlag{
			Name:   "remove-prefix",
			Usage:  "A prefix to strip from every name that starts with it (matched case-insensitively)",
			EnvVar: "INPUT_REMOVE_PREFIX",
		},
		cli.StringSliceFlag{
			Name:   "include",
			Value:  &cli.StringSlice{},
			Usage:  "Comma-separated regular expressions; only names matching at least one are exported",
			EnvVar: "INPUT_INCLUDE",
		},
		cli.StringSliceFlag{
			Name:   "exclude",
			Value:  &cli.StringSlice{},
			Usage:  "Comma-separated regular expressions; names matching any are dropped",
			EnvVar: "INPUT_EXCLUDE",
		},
		cli.StringFlag{
			Name:   "convert",
			Usage:  "Case conversion to apply to every name: lower, upper, camel, constant, pascal or snake",
			EnvVar: "INPUT_CONVERT",
		},
		cli.BoolTFlag{
			Name:   "convert-prefix",
			Usage:  "Apply the case conversion to the prefix too (defaults to true)",
			EnvVar: "INPUT_CONVERT_PREFIX",
		},
		cli.BoolTFlag{
			Name:   "override",
			Usage:  "Overwrite environment variables that already exist (defaults to true)",
			EnvVar: "INPUT_OVERRIDE",
		},
		cli.StringFlag{
			Name:   "on-collision",
			Value:  string(envexport.PreferSecrets),
			Usage:  "What to do when a secret and a var map to the same name: prefer-secrets, prefer-vars, error or warn",
			EnvVar: "INPUT_ON_COLLISION",
		},
		cli.BoolFlag{
			Name:   "dry-run",
			Usage:  "Log what would be exported without changing the environment",
			EnvVar: "INPUT_DRY_RUN",
		},
	}),
	Action: func(c *cli.Context) error {
		cfg, l := setupLoggerAndConfig[ExportConfig](c)

		return exportAction(cfg, l, env.OS{})
	},
}

func exportAction(cfg ExportConfig, l logger.Logger, store env.Store) error {
	// Validate the collision strategy before doing any work, so a typo
	// fails the run even when the inputs happen not to collide.
	strategy, err := envexport.ParseStrategy(cfg.OnCollision)
	if err != nil {
		return err
	}

	rawSecrets, err := envexport.ParseSecrets(cfg.Secrets)
	if err != nil {
		return err
	}

	rawVars, err := envexport.ParseVars(cfg.Vars)
	if err != nil {
		return err
	}

	tcfg := envexport.TransformConfig{
		Exclude:       cfg.Exclude,
		RemovePrefix:  cfg.RemovePrefix,
		Prefix:        cfg.Prefix,
		Convert:       cfg.Convert,
		ConvertPrefix: cfg.ConvertPrefix,
	}
	// An empty include input means no include filtering at all
	if len(cfg.Include) > 0 {
		tcfg.Include = cfg.Include
	}

	secrets, err := envexport.Transform(rawSecrets, envexport.SourceSecret, tcfg, l)
	if err != nil {
		return err
	}

	vars, err := envexport.Transform(rawVars, envexport.SourceVar, tcfg, l)
	if err != nil {
		return err
	}

	merged, collisions, err := envexport.Resolve(secrets, vars, strategy)
	if err != nil {
		return err
	}

	if strategy == envexport.Warn {
		for _, collision := range collisions {
			l.Warn("Collision detected for key %q: the secret %q wins over the var %q", collision.FinalKey, collision.SecretKey, collision.VarKey)
		}
	}

	exported := envexport.Export(merged, store, l, envexport.ExportOptions{
		Override: cfg.Override,
		DryRun:   cfg.DryRun,
	})

	if cfg.DryRun {
		l.Notice("Dry run: %d variable(s) would have been exported", exported)
	} else {
		l.Notice("Exported %d variable(s)", exported)
	}

	return nil
}
