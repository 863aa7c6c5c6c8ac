// Package yamlconf provides the YAML implementation of config.Loader for
// `.yaml` and `.yml` files. The document layout mirrors the HCL format.
package yamlconf

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/vk/busboot/internal/config"
	"github.com/vk/busboot/internal/ctxlog"
	"github.com/vk/busboot/internal/fsutil"
	"gopkg.in/yaml.v3"
)

type document struct {
	Endpoint    string          `yaml:"endpoint"`
	Installers  *installersDoc  `yaml:"installers"`
	Directories []*directoryDoc `yaml:"directories"`
	Publishers  []*publisherDoc `yaml:"publishers"`
}

type installersDoc struct {
	Combine string     `yaml:"combine"`
	Rules   []*ruleDoc `yaml:"rules"`
}

type ruleDoc struct {
	Kind           string `yaml:"kind"`
	Flag           string `yaml:"flag"`
	ExcludedSuffix string `yaml:"excluded_suffix"`
	CaseSensitive  bool   `yaml:"case_sensitive"`
	User           string `yaml:"user"`
	Domain         string `yaml:"domain"`
	ExcludedGroup  string `yaml:"excluded_group"`
	Value          bool   `yaml:"value"`
}

type directoryDoc struct {
	Domain  string              `yaml:"domain"`
	Timeout string              `yaml:"timeout"`
	Members map[string][]string `yaml:"members"`
}

type publisherDoc struct {
	Event    string `yaml:"event"`
	Endpoint string `yaml:"endpoint"`
}

// Loader is the YAML-specific implementation of the config.Loader interface.
type Loader struct{}

// NewLoader creates a new YAML configuration loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load parses all YAML files under paths and merges them into one model.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)

	files, err := fsutil.FindFilesByExtension(paths, ".yaml", ".yml")
	if err != nil {
		return nil, err
	}
	logger.Debug("Discovered YAML files.", "count", len(files))

	model := config.NewModel()
	for _, file := range files {
		raw, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("failed to read YAML file %s: %w", file, err)
		}

		var doc document
		dec := yaml.NewDecoder(bytes.NewReader(raw))
		dec.KnownFields(true)
		if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("failed to decode YAML file %s: %w", file, err)
		}

		fileModel, err := translate(&doc, file)
		if err != nil {
			return nil, err
		}
		if err := model.Merge(fileModel); err != nil {
			return nil, err
		}
		logger.Debug("Loaded YAML file.", "file", file, "publishers", len(fileModel.Publishers))
	}
	return model, nil
}

func translate(doc *document, source string) (*config.Model, error) {
	model := config.NewModel()
	if doc.Endpoint != "" {
		model.Endpoint, model.EndpointSource = doc.Endpoint, source
	}

	if doc.Installers != nil {
		installers := &config.Installers{Combine: doc.Installers.Combine, Source: source}
		for _, r := range doc.Installers.Rules {
			installers.Rules = append(installers.Rules, &config.Rule{
				Kind:           r.Kind,
				Flag:           r.Flag,
				ExcludedSuffix: r.ExcludedSuffix,
				CaseSensitive:  r.CaseSensitive,
				User:           r.User,
				Domain:         r.Domain,
				ExcludedGroup:  r.ExcludedGroup,
				Value:          r.Value,
			})
		}
		model.Installers = installers
	}

	for _, d := range doc.Directories {
		if d.Domain == "" {
			return nil, fmt.Errorf("%s: directory entry without domain", source)
		}
		dir := &config.Directory{Domain: d.Domain, Members: d.Members, Source: source}
		if d.Timeout != "" {
			timeout, err := time.ParseDuration(d.Timeout)
			if err != nil {
				return nil, fmt.Errorf("%s: directory %q: invalid timeout: %w", source, d.Domain, err)
			}
			dir.Timeout = timeout
		}
		if err := model.Merge(&config.Model{Directories: map[string]*config.Directory{d.Domain: dir}}); err != nil {
			return nil, err
		}
	}

	for _, p := range doc.Publishers {
		model.Publishers = append(model.Publishers, &config.Publisher{
			EventType: p.Event,
			Endpoint:  p.Endpoint,
			Source:    source,
		})
	}
	return model, nil
}
