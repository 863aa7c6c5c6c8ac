package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"
	"github.com/vk/busboot/internal/config"
	"github.com/vk/busboot/internal/ctxlog"
	"github.com/vk/busboot/internal/directory"
	"github.com/vk/busboot/internal/installer"
	"github.com/vk/busboot/internal/installpolicy"
	"github.com/vk/busboot/internal/routing"
	"golang.org/x/sync/errgroup"
)

// App encapsulates the endpoint's bootstrap dependencies and lifecycle.
type App struct {
	logger     *slog.Logger
	launchID   uuid.UUID
	config     *Config
	endpoint   string
	rule       installpolicy.Rule
	launch     installpolicy.LaunchContext
	routes     *routing.Registry
	installers *installer.Set
	decision   *installpolicy.Decision
}

// NewApp loads configuration through loader, registers the publisher routes
// from configuration and modules, and freezes the routing table. Any
// conflicting or invalid route is returned as an error.
func NewApp(outW io.Writer, appConfig *Config, loader config.Loader, modules ...routing.Module) (*App, error) {
	launchID := uuid.New()
	logger := newLogger(appConfig.LogLevel, appConfig.LogFormat, outW).With("launch_id", launchID.String())
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	model, err := loader.Load(ctx, appConfig.ConfigPaths...)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	logger.Debug("Configuration loaded.", "publishers", len(model.Publishers), "directories", len(model.Directories))

	endpoint := model.Endpoint
	if appConfig.Endpoint != "" {
		endpoint = appConfig.Endpoint
	}
	if endpoint == "" {
		return nil, fmt.Errorf("endpoint name is not configured")
	}
	logger = logger.With("endpoint", endpoint)
	ctx = ctxlog.WithLogger(ctx, logger)

	rule, err := model.PolicyRule()
	if err != nil {
		return nil, fmt.Errorf("invalid installers configuration: %w", err)
	}

	groups := directory.NewStatic(model.Directories).Groups
	launch := installpolicy.LaunchContext{
		Arguments:   appConfig.Arguments,
		MachineName: appConfig.MachineName,
		Groups:      directory.PerDomainTimeouts(groups, model.Directories),
	}

	routes, err := buildRoutes(ctx, model, modules)
	if err != nil {
		return nil, err
	}

	return &App{
		logger:     logger,
		launchID:   launchID,
		config:     appConfig,
		endpoint:   endpoint,
		rule:       rule,
		launch:     launch,
		routes:     routes,
		installers: installer.NewSet(),
	}, nil
}

// buildRoutes registers configured publishers, then lets modules register
// concurrently, and freezes the result.
func buildRoutes(ctx context.Context, model *config.Model, modules []routing.Module) (*routing.Registry, error) {
	logger := ctxlog.FromContext(ctx)
	routes := routing.New()

	for _, p := range model.Publishers {
		if err := routes.Register(routing.EventType(p.EventType), p.Endpoint); err != nil {
			return nil, fmt.Errorf("publisher %q in %s: %w", p.EventType, p.Source, err)
		}
	}
	logger.Debug("Configured publishers registered.", "count", len(model.Publishers))

	var g errgroup.Group
	for _, mod := range modules {
		g.Go(func() error {
			if err := mod.RegisterRoutes(routes); err != nil {
				return fmt.Errorf("module %T: %w", mod, err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	logger.Debug("All route modules registered.", "count", len(modules))

	routes.Freeze()
	logger.Info("Routing table frozen.", "routes", routes.Len())
	return routes, nil
}

// AddInstaller registers an installer to run when the policy allows it.
func (a *App) AddInstaller(inst installer.Installer) error {
	return a.installers.Add(inst)
}

// Start evaluates the installation policy and runs the installers if it
// allows them. A directory lookup failure aborts the start; the host decides
// what to do about it.
func (a *App) Start(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Start method started.")

	decision, err := installpolicy.Evaluate(ctx, a.launch, a.rule)
	if err != nil {
		return fmt.Errorf("failed to evaluate installation policy: %w", err)
	}
	a.decision = &decision
	a.logger.Info("Installation policy decided.", "should_install", decision.ShouldInstall, "reason", decision.Reason.String())

	if decision.ShouldInstall {
		if err := a.installers.RunAll(ctx, a.config.DryRun); err != nil {
			return err
		}
		a.logger.Info("Installers complete.", "count", a.installers.Len())
	} else {
		a.logger.Info("Installers skipped.", "installers", a.installers.Names())
	}

	for entry := range a.routes.AllRoutes() {
		a.logger.Debug("Publisher route.", "event_type", string(entry.EventType), "publisher", entry.Publisher, "name", entry.EventType.Short())
	}

	a.logger.Debug("App.Start method finished.")
	return nil
}

// Registry returns the frozen routing table.
func (a *App) Registry() *routing.Registry {
	return a.routes
}

// Decision returns the installation decision made by Start. The boolean is
// false until Start has evaluated the policy.
func (a *App) Decision() (installpolicy.Decision, bool) {
	if a.decision == nil {
		return installpolicy.Decision{}, false
	}
	return *a.decision, true
}

// Endpoint returns the resolved endpoint name.
func (a *App) Endpoint() string {
	return a.endpoint
}

// LaunchID identifies this launch in logs.
func (a *App) LaunchID() uuid.UUID {
	return a.launchID
}
