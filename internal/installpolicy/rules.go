package installpolicy

import (
	"context"
	"errors"
	"slices"
	"strings"
)

var errNoProvider = errors.New("no group membership provider configured")

// Rule is a verdict strategy.
type Rule interface {
	evaluate(ctx context.Context, lc LaunchContext) (Decision, error)
}

// ExplicitFlagRule installs only when the launch arguments are exactly one
// token equal to Flag.
type ExplicitFlagRule struct {
	Flag string
}

func (r ExplicitFlagRule) evaluate(_ context.Context, lc LaunchContext) (Decision, error) {
	install := len(lc.Arguments) == 1 && lc.Arguments[0] == r.Flag
	return Decision{ShouldInstall: install, Reason: ReasonExplicitFlag}, nil
}

// MachineNameRule installs unless the machine name ends with ExcludedSuffix.
// The comparison ignores case unless CaseSensitive is set.
type MachineNameRule struct {
	ExcludedSuffix string
	CaseSensitive  bool
}

func (r MachineNameRule) evaluate(_ context.Context, lc LaunchContext) (Decision, error) {
	name, suffix := lc.MachineName, r.ExcludedSuffix
	if !r.CaseSensitive {
		name, suffix = strings.ToLower(name), strings.ToLower(suffix)
	}
	return Decision{ShouldInstall: !strings.HasSuffix(name, suffix), Reason: ReasonMachineNameConvention}, nil
}

// GroupMembershipRule installs unless User is a member of ExcludedGroup in
// Domain. Lookup failures are returned as *DirectoryLookupError.
type GroupMembershipRule struct {
	User          string
	Domain        string
	ExcludedGroup string
}

func (r GroupMembershipRule) evaluate(ctx context.Context, lc LaunchContext) (Decision, error) {
	if lc.Groups == nil {
		return Decision{}, &DirectoryLookupError{User: r.User, Domain: r.Domain, Err: errNoProvider}
	}
	groups, err := lc.Groups(ctx, r.User, r.Domain)
	if err != nil {
		var lookupErr *DirectoryLookupError
		if errors.As(err, &lookupErr) {
			return Decision{}, err
		}
		return Decision{}, &DirectoryLookupError{User: r.User, Domain: r.Domain, Err: err}
	}
	member := slices.Contains(groups, r.ExcludedGroup)
	return Decision{ShouldInstall: !member, Reason: ReasonGroupMembershipConvention}, nil
}

// AlwaysRule returns Value regardless of the launch context.
type AlwaysRule struct {
	Value bool
}

func (r AlwaysRule) evaluate(context.Context, LaunchContext) (Decision, error) {
	return Decision{ShouldInstall: r.Value, Reason: ReasonDefault}, nil
}

type allOf []Rule

// AllOf installs only when every rule does. Evaluation stops at the first
// rule that refuses, whose decision is returned. With no rules it installs.
func AllOf(rules ...Rule) Rule {
	return allOf(rules)
}

func (rs allOf) evaluate(ctx context.Context, lc LaunchContext) (Decision, error) {
	d := Decision{ShouldInstall: true, Reason: ReasonDefault}
	for _, rule := range rs {
		var err error
		if d, err = rule.evaluate(ctx, lc); err != nil {
			return Decision{}, err
		}
		if !d.ShouldInstall {
			return d, nil
		}
	}
	return d, nil
}

type anyOf []Rule

// AnyOf installs as soon as one rule does. With no rules it never installs.
func AnyOf(rules ...Rule) Rule {
	return anyOf(rules)
}

func (rs anyOf) evaluate(ctx context.Context, lc LaunchContext) (Decision, error) {
	d := Decision{ShouldInstall: false, Reason: ReasonDefault}
	for _, rule := range rs {
		var err error
		if d, err = rule.evaluate(ctx, lc); err != nil {
			return Decision{}, err
		}
		if d.ShouldInstall {
			return d, nil
		}
	}
	return d, nil
}
