package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/vk/expgrid/internal/app"
	"github.com/vk/expgrid/internal/builder"
	"github.com/vk/expgrid/internal/dag"
)

// Exit codes returned by the expgrid binary.
const (
	ExitFailure = 1
	ExitUsage   = 2
	ExitCyclic  = 3
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// ExitCode maps an error from Parse or App.Run to a process exit code.
func ExitCode(err error) int {
	var exitErr *ExitError
	switch {
	case err == nil:
		return 0
	case errors.As(err, &exitErr):
		return exitErr.Code
	case errors.Is(err, dag.ErrCyclicDependency):
		return ExitCyclic
	default:
		return ExitFailure
	}
}

// Parse processes command-line arguments. It returns a populated Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("expgrid", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
expgrid - plans parameterized experiments from declarative step files.

Usage:
  expgrid [options] [PATH ...]

Arguments:
  PATH
    An experiment file (.hcl, .yaml, .yml) or a directory containing them.

Exit codes:
  1  loading or planning failed
  2  invalid usage
  3  the experiment dependencies are cyclic

Options:
`)
		flagSet.PrintDefaults()
	}

	gridFlag := flagSet.String("grid", "", "Path to an experiment file or directory.")
	gFlag := flagSet.String("g", "", "Path to an experiment file or directory (shorthand).")
	formatFlag := flagSet.String("format", "text", "Plan output format. Options: 'text', 'json' or 'hcl'.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	seedFlag := flagSet.Uint64("seed", builder.DefaultSeed, "Seed for sample blocks.")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: ExitUsage, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	var paths []string
	if *gridFlag != "" {
		paths = append(paths, *gridFlag)
	}
	if *gFlag != "" {
		paths = append(paths, *gFlag)
	}
	paths = append(paths, flagSet.Args()...)
	slog.Debug("Experiment paths determined.", "paths", paths)

	if len(paths) == 0 {
		slog.Debug("No experiment path provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}

	config, err := app.NewConfig(app.Config{
		GridPaths: paths,
		Format:    strings.ToLower(*formatFlag),
		LogFormat: strings.ToLower(*logFormatFlag),
		LogLevel:  strings.ToLower(*logLevelFlag),
		Seed:      *seedFlag,
	})
	if err != nil {
		return nil, false, &ExitError{Code: ExitUsage, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}
