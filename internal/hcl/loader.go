package hcl

import (
	"context"
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/vk/busboot/internal/config"
	"github.com/vk/busboot/internal/ctxlog"
	"github.com/vk/busboot/internal/fsutil"
)

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct {
	machineName string
	environ     []string
}

// Option configures a Loader.
type Option func(*Loader)

// WithMachineName sets the value of the machine_name variable.
func WithMachineName(name string) Option {
	return func(l *Loader) { l.machineName = name }
}

// WithEnviron replaces the process environment exposed as env.
// Entries use the "KEY=value" form of os.Environ.
func WithEnviron(environ []string) Option {
	return func(l *Loader) { l.environ = environ }
}

// NewLoader creates a new HCL configuration loader.
func NewLoader(opts ...Option) *Loader {
	l := &Loader{environ: os.Environ()}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load parses all .hcl files under paths and merges them into one model.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path_count", len(paths))

	files, err := fsutil.FindFilesByExtension(paths, ".hcl")
	if err != nil {
		return nil, err
	}
	logger.Debug("Discovered HCL files.", "count", len(files))

	parser := hclparse.NewParser()
	evalCtx := newEvalContext(l.machineName, l.environ)
	model := config.NewModel()

	for _, file := range files {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse HCL file %s: %w", file, diags)
		}

		var root fileRoot
		if diags := gohcl.DecodeBody(hclFile.Body, evalCtx, &root); diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode HCL file %s: %w", file, diags)
		}

		fileModel, err := translateFile(&root, evalCtx, file)
		if err != nil {
			return nil, err
		}
		if err := model.Merge(fileModel); err != nil {
			return nil, err
		}
		logger.Debug("Loaded HCL file.", "file", file, "publishers", len(fileModel.Publishers))
	}

	logger.Debug("HCL loading complete.", "files", len(files), "publishers", len(model.Publishers), "directories", len(model.Directories))
	return model, nil
}
