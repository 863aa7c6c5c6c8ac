// Package installer holds the environment-provisioning steps an endpoint runs
// when the installation policy allows it.
package installer

import (
	"context"
	"fmt"
	"time"

	"github.com/vk/busboot/internal/ctxlog"
)

// Installer is a single provisioning step.
type Installer interface {
	Name() string
	Install(ctx context.Context) error
}

// Func adapts a function to the Installer interface.
type Func struct {
	StepName string
	Fn       func(ctx context.Context) error
}

func (f Func) Name() string                      { return f.StepName }
func (f Func) Install(ctx context.Context) error { return f.Fn(ctx) }

// Set holds installers in registration order.
type Set struct {
	all   []Installer
	names map[string]struct{}
}

// NewSet creates an empty Set.
func NewSet() *Set {
	return &Set{names: make(map[string]struct{})}
}

// Add registers an installer. Names must be unique.
func (s *Set) Add(inst Installer) error {
	name := inst.Name()
	if name == "" {
		return fmt.Errorf("installer name must not be empty")
	}
	if _, exists := s.names[name]; exists {
		return fmt.Errorf("installer with name '%s' already registered", name)
	}
	s.names[name] = struct{}{}
	s.all = append(s.all, inst)
	return nil
}

// Names returns the registered installer names in order.
func (s *Set) Names() []string {
	names := make([]string, 0, len(s.all))
	for _, inst := range s.all {
		names = append(names, inst.Name())
	}
	return names
}

// Len returns the number of registered installers.
func (s *Set) Len() int { return len(s.all) }

// RunAll runs every installer in order and stops at the first failure. In
// dry-run mode each step is only logged.
func (s *Set) RunAll(ctx context.Context, dryRun bool) error {
	logger := ctxlog.FromContext(ctx)
	for _, inst := range s.all {
		name := inst.Name()
		if dryRun {
			logger.Info("Dry run: skipping installer.", "installer", name)
			continue
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		start := time.Now()
		logger.Debug("Running installer.", "installer", name)
		if err := inst.Install(ctxlog.With(ctx, "installer", name)); err != nil {
			logger.Error("Installer failed.", "installer", name, "error", err)
			return fmt.Errorf("installer '%s' failed: %w", name, err)
		}
		logger.Info("Installer finished.", "installer", name, "duration", time.Since(start))
	}
	return nil
}
