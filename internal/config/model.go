package config

import (
	"fmt"
	"time"
)

// Rule kinds understood by the installer policy.
const (
	RuleExplicitFlag    = "explicit_flag"
	RuleMachineName     = "machine_name"
	RuleGroupMembership = "group_membership"
	RuleAlways          = "always"
)

// Combine modes for the rules of an installers block.
const (
	CombineAll = "all"
	CombineAny = "any"
)

// Model is the unified representation of all loaded configuration files.
type Model struct {
	Endpoint       string
	EndpointSource string
	Installers     *Installers
	Directories    map[string]*Directory
	Publishers     []*Publisher
}

// Installers is the format-agnostic representation of an `installers` block.
type Installers struct {
	Combine string
	Rules   []*Rule
	Source  string
}

// Rule is a single installer policy rule. Only the fields relevant to Kind
// are meaningful.
type Rule struct {
	Kind string

	Flag string

	ExcludedSuffix string
	CaseSensitive  bool

	User          string
	Domain        string
	ExcludedGroup string

	Value bool
}

// Directory holds static group memberships for one directory domain.
type Directory struct {
	Domain string
	// Timeout bounds a single lookup. Zero means no bound.
	Timeout time.Duration
	Members map[string][]string
	Source  string
}

// Publisher declares the endpoint that publishes an event type.
type Publisher struct {
	EventType string
	Endpoint  string
	Source    string
}

// NewModel returns an empty model.
func NewModel() *Model {
	return &Model{
		Directories: make(map[string]*Directory),
	}
}

// Merge folds other into m. Publishers accumulate; conflicting publishers are
// left for the routing registry to reject. Endpoint and installers may be
// declared once across all files and directory members once per domain.
func (m *Model) Merge(other *Model) error {
	if other == nil {
		return nil
	}

	if other.Endpoint != "" {
		if m.Endpoint != "" && m.Endpoint != other.Endpoint {
			return fmt.Errorf("endpoint declared as %q in %s and as %q in %s", m.Endpoint, m.EndpointSource, other.Endpoint, other.EndpointSource)
		}
		m.Endpoint, m.EndpointSource = other.Endpoint, other.EndpointSource
	}

	if other.Installers != nil {
		if m.Installers != nil {
			return fmt.Errorf("installers block declared in both %s and %s", m.Installers.Source, other.Installers.Source)
		}
		m.Installers = other.Installers
	}

	if m.Directories == nil {
		m.Directories = make(map[string]*Directory)
	}
	for domain, dir := range other.Directories {
		existing, ok := m.Directories[domain]
		if !ok {
			m.Directories[domain] = dir
			continue
		}
		if dir.Timeout != 0 {
			if existing.Timeout != 0 && existing.Timeout != dir.Timeout {
				return fmt.Errorf("directory %q: conflicting timeouts in %s and %s", domain, existing.Source, dir.Source)
			}
			existing.Timeout = dir.Timeout
		}
		if existing.Members == nil {
			existing.Members = make(map[string][]string)
		}
		for user, groups := range dir.Members {
			if _, dup := existing.Members[user]; dup {
				return fmt.Errorf("directory %q: member %q declared in both %s and %s", domain, user, existing.Source, dir.Source)
			}
			existing.Members[user] = groups
		}
	}

	m.Publishers = append(m.Publishers, other.Publishers...)
	return nil
}
