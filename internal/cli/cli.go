package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/spf13/pflag"
	"github.com/vk/busboot/internal/app"
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

// envConfig holds the defaults read from the environment. Flags override it.
type envConfig struct {
	ConfigPaths   []string `env:"BUSBOOT_CONFIG" envSeparator:","`
	Endpoint      string   `env:"BUSBOOT_ENDPOINT"`
	MachineName   string   `env:"BUSBOOT_MACHINE_NAME"`
	LogFormat     string   `env:"BUSBOOT_LOG_FORMAT" envDefault:"text"`
	LogLevel      string   `env:"BUSBOOT_LOG_LEVEL" envDefault:"info"`
	DryRun        bool     `env:"BUSBOOT_DRY_RUN"`
	RouteManifest string   `env:"BUSBOOT_ROUTE_MANIFEST"`
}

// hostname is the default machine name source.
var hostname = os.Hostname

// Parse processes command-line arguments against the given environment
// (os.Environ form). It returns a populated app.Config, a boolean indicating
// if the program should exit cleanly, or an ExitError.
func Parse(args []string, environ []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")

	var defaults envConfig
	if err := env.ParseWithOptions(&defaults, env.Options{Environment: env.ToMap(environ)}); err != nil {
		return nil, false, &ExitError{Code: 2, Message: fmt.Sprintf("invalid environment: %v", err)}
	}

	flagSet := pflag.NewFlagSet("busboot", pflag.ContinueOnError)
	flagSet.SetOutput(output)
	flagSet.Usage = func() {
		fmt.Fprint(output, `
busboot - Message endpoint bootstrap: installer policy and publisher routing.

Usage:
  busboot [options] [LAUNCH_ARGUMENTS...]

Arguments:
  LAUNCH_ARGUMENTS
    Positional tokens passed to the installation policy, e.g. /runInstallers.

Options:
`)
		flagSet.PrintDefaults()
	}

	configPaths := flagSet.StringArrayP("config", "c", defaults.ConfigPaths, "Path to a .hcl/.yaml file or directory. Repeatable.")
	endpoint := flagSet.String("endpoint", defaults.Endpoint, "Endpoint name, overrides the configured one.")
	machineName := flagSet.String("machine-name", defaults.MachineName, "Machine name seen by the installation policy. Defaults to the host name.")
	logFormat := flagSet.String("log-format", defaults.LogFormat, "Log output format. Options: 'text' or 'json'.")
	logLevel := flagSet.String("log-level", defaults.LogLevel, "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	dryRun := flagSet.Bool("dry-run", defaults.DryRun, "Evaluate the installation policy but do not run installers.")
	routeManifest := flagSet.String("route-manifest", defaults.RouteManifest, "Write the publisher routes to this YAML file when installers run.")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.", "positional", flagSet.NArg())

	name := *machineName
	if name == "" {
		h, err := hostname()
		if err != nil {
			return nil, false, &ExitError{Code: 1, Message: fmt.Sprintf("cannot determine machine name: %v", err)}
		}
		name = h
	}

	config, err := app.NewConfig(app.Config{
		ConfigPaths:   *configPaths,
		Endpoint:      *endpoint,
		MachineName:   name,
		Arguments:     flagSet.Args(),
		LogFormat:     strings.ToLower(*logFormat),
		LogLevel:      strings.ToLower(*logLevel),
		DryRun:        *dryRun,
		RouteManifest: *routeManifest,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}
