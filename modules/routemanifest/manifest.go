// Package routemanifest provides an installer that writes the endpoint's
// publisher routes to a YAML manifest, so operators and subscriber endpoints
// can see which endpoint owns which event type.
package routemanifest

import (
	"cmp"
	"context"
	"fmt"
	"iter"
	"os"
	"path/filepath"
	"slices"

	"github.com/vk/busboot/internal/ctxlog"
	"github.com/vk/busboot/internal/routing"
	"gopkg.in/yaml.v3"
)

// RouteSource is the read side of a routing table.
type RouteSource interface {
	AllRoutes() iter.Seq[routing.RouteEntry]
}

// Manifest is the document written to disk.
type Manifest struct {
	Endpoint   string  `yaml:"endpoint"`
	Publishers []Route `yaml:"publishers"`
}

// Route is one manifest entry.
type Route struct {
	Event    string `yaml:"event"`
	Endpoint string `yaml:"endpoint"`
}

// Installer writes the manifest file.
type Installer struct {
	path     string
	endpoint string
	routes   RouteSource
}

// New returns an installer writing the routes of endpoint to path.
func New(path, endpoint string, routes RouteSource) *Installer {
	return &Installer{path: path, endpoint: endpoint, routes: routes}
}

// Name implements installer.Installer.
func (i *Installer) Name() string {
	return "route-manifest"
}

// Build collects the routes sorted by event type.
func (i *Installer) Build() *Manifest {
	m := &Manifest{Endpoint: i.endpoint, Publishers: []Route{}}
	for entry := range i.routes.AllRoutes() {
		m.Publishers = append(m.Publishers, Route{Event: string(entry.EventType), Endpoint: entry.Publisher})
	}
	slices.SortFunc(m.Publishers, func(a, b Route) int {
		return cmp.Compare(a.Event, b.Event)
	})
	return m
}

// Install writes the manifest to a temporary file next to path and renames
// it into place.
func (i *Installer) Install(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)

	data, err := yaml.Marshal(i.Build())
	if err != nil {
		return fmt.Errorf("failed to encode route manifest: %w", err)
	}

	dir := filepath.Dir(i.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create manifest directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".route-manifest-*")
	if err != nil {
		return fmt.Errorf("failed to create temporary manifest: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write route manifest: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write route manifest: %w", err)
	}
	if err := os.Rename(tmp.Name(), i.path); err != nil {
		return fmt.Errorf("failed to install route manifest: %w", err)
	}

	logger.Info("Route manifest written.", "path", i.path, "bytes", len(data))
	return nil
}
