package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/vk/busboot/internal/app"
	"github.com/vk/busboot/internal/cli"
	"github.com/vk/busboot/internal/config"
	"github.com/vk/busboot/internal/hcl"
	"github.com/vk/busboot/internal/yamlconf"
	"github.com/vk/busboot/modules/routemanifest"
)

// main is the entrypoint for the busboot application.
func main() {
	// Use a minimal logger until the full one is configured.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := run(ctx, os.Stdout, os.Args[1:], os.Environ())
	stop()

	if err != nil {
		var exitErr *cli.ExitError
		if errors.As(err, &exitErr) {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run encapsulates the main application logic for easier testing and error handling.
func run(ctx context.Context, outW io.Writer, args []string, environ []string) error {
	appConfig, shouldExit, err := cli.Parse(args, environ, outW)
	if err != nil {
		return err
	}
	if shouldExit {
		return nil
	}

	loader := config.Chain(
		hcl.NewLoader(hcl.WithMachineName(appConfig.MachineName), hcl.WithEnviron(environ)),
		yamlconf.NewLoader(),
	)

	endpoint, err := app.NewApp(outW, appConfig, loader, app.CoreModules...)
	if err != nil {
		return fmt.Errorf("endpoint configuration failed: %w", err)
	}

	if appConfig.RouteManifest != "" {
		manifest := routemanifest.New(appConfig.RouteManifest, endpoint.Endpoint(), endpoint.Registry())
		if err := endpoint.AddInstaller(manifest); err != nil {
			return err
		}
	}

	return endpoint.Start(ctx)
}
