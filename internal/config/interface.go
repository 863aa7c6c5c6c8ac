package config

import (
	"context"
	"fmt"
)

// Loader is the interface for a format-specific configuration loader.
type Loader interface {
	// Load reads every file it understands under paths and translates them
	// into a single model. Paths that do not exist are skipped.
	Load(ctx context.Context, paths ...string) (*Model, error)
}

type chain []Loader

// Chain returns a Loader that runs each loader over the same paths and
// merges the results in order.
func Chain(loaders ...Loader) Loader {
	return chain(loaders)
}

func (c chain) Load(ctx context.Context, paths ...string) (*Model, error) {
	model := NewModel()
	for _, l := range c {
		m, err := l.Load(ctx, paths...)
		if err != nil {
			return nil, err
		}
		if err := model.Merge(m); err != nil {
			return nil, fmt.Errorf("failed to merge configuration: %w", err)
		}
	}
	return model, nil
}
