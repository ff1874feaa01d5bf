package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/vk/shaclsched/internal/app"
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

// Parse processes command-line arguments. It returns a populated
// app.Config, the path to a newline-delimited JSON task stream (empty
// means read stdin), a boolean indicating if the program should exit
// cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (cfg *app.Config, tasksPath string, shouldExit bool, err error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("flowsched", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
flowsched - a demo host for the data-flow task scheduler.

Usage:
  flowsched [options] [TASKS_PATH]

Arguments:
  TASKS_PATH
    Path to a newline-delimited JSON file of task descriptions. Reads
    stdin if omitted.

Options:
`)
		flagSet.PrintDefaults()
	}

	configFlag := flagSet.String("config", "", "Path to the scheduler's .hcl config file.")
	healthPortFlag := flagSet.Int("healthcheck-port", 0, "Port for the HTTP health check server. 0 leaves the config file's setting as-is.")
	logFormatFlag := flagSet.String("log-format", "json", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if parseErr := flagSet.Parse(args); parseErr != nil {
		if parseErr == flag.ErrHelp {
			return nil, "", true, nil
		}
		return nil, "", false, &ExitError{Code: 2, Message: parseErr.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	if flagSet.NArg() > 0 {
		tasksPath = flagSet.Arg(0)
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, "", false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, "", false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}
	slog.Debug("CLI parameter validation complete.")

	config, err := app.NewConfig(app.Config{
		ConfigPath:      *configFlag,
		HealthcheckPort: *healthPortFlag,
		LogFormat:       logFormat,
		LogLevel:        logLevel,
	})
	if err != nil {
		return nil, "", false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.")
	return config, tasksPath, false, nil
}
