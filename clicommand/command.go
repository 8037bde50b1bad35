package clicommand

import (
	"fmt"
	"os"

	"github.com/oleiade/reflections"
	"github.com/urfave/cli"

	"github.com/envexport/secrets-to-env/cliconfig"
	"github.com/envexport/secrets-to-env/logger"
)

// setupLoggerAndConfig loads the command's configuration struct from the CLI
// context (flags, environment variables and an optional config file) and
// builds a logger configured by the global flags. Config loading failures
// are fatal; there is nothing useful a command can do without its config.
func setupLoggerAndConfig[T any](c *cli.Context) (T, logger.Logger) {
	cfg := new(T)

	loader := cliconfig.Loader{CLI: c, Config: cfg}
	warnings, err := loader.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err)
		os.Exit(1)
	}

	l := CreateLogger(cfg)

	// Now that we have a logger, log out the warnings that loading config
	// generated
	for _, warning := range warnings {
		l.Warn("%s", warning)
	}

	return *cfg, l
}

// CreateLogger builds a logger from the global config fields embedded in cfg.
// Logging goes to stderr; stdout is reserved for command output.
func CreateLogger(cfg any) logger.Logger {
	var printer logger.Printer

	logFormat, _ := reflections.GetField(cfg, "LogFormat")
	switch logFormat {
	case "json":
		printer = logger.NewJSONPrinter(os.Stderr)
	default:
		text := logger.NewTextPrinter(os.Stderr)
		if noColor, err := reflections.GetField(cfg, "NoColor"); noColor == true && err == nil {
			text.Colors = false
		}
		printer = text
	}

	l := logger.NewConsoleLogger(printer, os.Exit)

	if logLevel, err := reflections.GetField(cfg, "LogLevel"); err == nil {
		if levelStr, ok := logLevel.(string); ok && levelStr != "" {
			level, err := logger.LevelFromString(levelStr)
			if err != nil {
				l.Fatal("%s", err)
			}
			l.SetLevel(level)
		}
	}

	// A debug flag anywhere beats the configured level
	if debug, err := reflections.GetField(cfg, "Debug"); debug == true && err == nil {
		l.SetLevel(logger.DEBUG)
	}

	return l
}
