// Package testutil provides a harness for end-to-end bootstrap tests: it
// writes configuration files to a temporary directory, builds an endpoint
// from them and starts it.
package testutil

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/busboot/internal/app"
	"github.com/vk/busboot/internal/config"
	"github.com/vk/busboot/internal/hcl"
	"github.com/vk/busboot/internal/installer"
	"github.com/vk/busboot/internal/routing"
	"github.com/vk/busboot/internal/yamlconf"
)

// SafeBuffer is a thread-safe buffer for capturing log output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

// Write implements the io.Writer interface for SafeBuffer.
func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

// String implements the fmt.Stringer interface for SafeBuffer.
func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// Launch describes how the endpoint under test is launched.
type Launch struct {
	Arguments   []string
	MachineName string
	Environ     []string
	DryRun      bool
	Modules     []routing.Module
	Installers  []installer.Installer
	// BeforeStart runs after the endpoint is built and before Start.
	BeforeStart func(a *app.App) error
}

// HarnessResult holds the outcomes of a bootstrap test run.
type HarnessResult struct {
	LogOutput string
	// Err is the first error from either building or starting the endpoint.
	Err error
	// App is nil when building the endpoint failed.
	App *app.App
	Dir string
}

// RunBootstrapTest runs a bootstrap with a background context.
func RunBootstrapTest(t *testing.T, files map[string]string, launch Launch) *HarnessResult {
	t.Helper()
	return RunBootstrapTestWithContext(context.Background(), t, files, launch)
}

// RunBootstrapTestWithContext writes files under a temporary directory,
// loads them through the HCL and YAML loaders and starts the endpoint with
// ctx.
func RunBootstrapTestWithContext(ctx context.Context, t *testing.T, files map[string]string, launch Launch) *HarnessResult {
	t.Helper()

	tmpDir := t.TempDir()
	for name, content := range files {
		filePath := filepath.Join(tmpDir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(filePath), 0o755))
		require.NoError(t, os.WriteFile(filePath, []byte(content), 0o644))
	}

	appConfig := &app.Config{
		ConfigPaths: []string{tmpDir},
		MachineName: launch.MachineName,
		Arguments:   launch.Arguments,
		LogLevel:    "debug",
		LogFormat:   "text",
		DryRun:      launch.DryRun,
	}

	loader := config.Chain(
		hcl.NewLoader(hcl.WithMachineName(launch.MachineName), hcl.WithEnviron(launch.Environ)),
		yamlconf.NewLoader(),
	)

	logBuffer := &SafeBuffer{}
	result := &HarnessResult{Dir: tmpDir}

	testApp, err := app.NewApp(logBuffer, appConfig, loader, launch.Modules...)
	if err == nil {
		result.App = testApp
		for _, inst := range launch.Installers {
			if err = testApp.AddInstaller(inst); err != nil {
				break
			}
		}
	}
	if err == nil && launch.BeforeStart != nil {
		err = launch.BeforeStart(testApp)
	}
	if err == nil {
		err = testApp.Start(ctx)
	}
	result.Err = err
	result.LogOutput = logBuffer.String()

	if os.Getenv("BUSBOOT_TEST_LOGS") == "true" {
		t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), result.LogOutput)
	}
	if err != nil {
		result.Err = fmt.Errorf("bootstrap failed: %w", err)
	}
	return result
}
