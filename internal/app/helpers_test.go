package app

import (
	"bytes"
	"context"
	"os"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/busboot/internal/config"
	"github.com/vk/busboot/internal/routing"
)

// SafeBuffer is a thread-safe buffer for capturing log output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// modelLoader returns a fixed model regardless of paths.
type modelLoader struct {
	model *config.Model
	err   error
}

func (l modelLoader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	return l.model, l.err
}

// setupAppTest creates a new app from model with debug logging captured.
func setupAppTest(t *testing.T, appConfig *Config, model *config.Model, modules ...routing.Module) (*App, *SafeBuffer) {
	t.Helper()

	logBuffer := &SafeBuffer{}
	appConfig.LogLevel = "debug"
	appConfig.LogFormat = "text"
	testApp, err := NewApp(logBuffer, appConfig, modelLoader{model: model}, modules...)
	require.NoError(t, err)

	t.Cleanup(func() {
		if os.Getenv("BUSBOOT_TEST_LOGS") == "true" {
			t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logBuffer.String())
		}
	})

	return testApp, logBuffer
}
