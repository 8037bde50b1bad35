// Package clicommand holds the CLI commands for secrets-to-env.
package clicommand

import "github.com/urfave/cli"

var ConfigFlag = cli.StringFlag{
	Name:   "config",
	Usage:  "Path to a configuration file",
	EnvVar: "SECRETS_TO_ENV_CONFIG",
}

var DebugFlag = cli.BoolFlag{
	Name:   "debug",
	Usage:  "Enable debug mode. Synonym for `--log-level debug`",
	EnvVar: "RUNNER_DEBUG,SECRETS_TO_ENV_DEBUG",
}

var LogLevelFlag = cli.StringFlag{
	Name:   "log-level",
	Value:  "notice",
	Usage:  "Set the log level, either debug, notice, info, error, warn or fatal",
	EnvVar: "SECRETS_TO_ENV_LOG_LEVEL",
}

var LogFormatFlag = cli.StringFlag{
	Name:   "log-format",
	Value:  "text",
	Usage:  "The format to use for the logger output, either text or json",
	EnvVar: "SECRETS_TO_ENV_LOG_FORMAT",
}

var NoColorFlag = cli.BoolFlag{
	Name:   "no-color",
	Usage:  "Don't show colors in logging",
	EnvVar: "SECRETS_TO_ENV_NO_COLOR,NO_COLOR",
}

type GlobalConfig struct {
	Config    string `cli:"config"`
	Debug     bool   `cli:"debug"`
	LogLevel  string `cli:"log-level"`
	LogFormat string `cli:"log-format"`
	NoColor   bool   `cli:"no-color"`
}

func globalFlags() []cli.Flag {
	return []cli.Flag{
		ConfigFlag,
		DebugFlag,
		LogLevelFlag,
		LogFormatFlag,
		NoColorFlag,
	}
}
