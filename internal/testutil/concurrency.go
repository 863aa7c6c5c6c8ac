package testutil

import (
	"context"
	"sync"

	"github.com/vk/busboot/internal/installer"
	"github.com/vk/busboot/internal/routing"
)

// InstallRecorder hands out installers that record when they run. It is
// safe for concurrent use.
type InstallRecorder struct {
	mu  sync.Mutex
	ran []string
}

// Installer returns an installer named name that records itself on Install.
func (r *InstallRecorder) Installer(name string) installer.Installer {
	return installer.Func{StepName: name, Fn: func(ctx context.Context) error {
		r.mu.Lock()
		defer r.mu.Unlock()
		r.ran = append(r.ran, name)
		return nil
	}}
}

// Ran returns the names of the installers that ran, in order.
func (r *InstallRecorder) Ran() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.ran...)
}

// RouteModule registers a fixed set of routes. Release, when set, blocks
// registration until it is closed, which lets tests hold several modules in
// flight at once.
type RouteModule struct {
	Routes  map[routing.EventType]string
	Release <-chan struct{}
}

// RegisterRoutes implements routing.Module.
func (m *RouteModule) RegisterRoutes(r *routing.Registry) error {
	if m.Release != nil {
		<-m.Release
	}
	for eventType, publisher := range m.Routes {
		if err := r.Register(eventType, publisher); err != nil {
			return err
		}
	}
	return nil
}
