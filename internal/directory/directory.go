// Package directory provides group membership providers for the
// installation policy. Real directory services are out of scope; Static
// serves memberships declared in configuration and WithTimeout bounds any
// provider.
package directory

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/vk/busboot/internal/config"
	"github.com/vk/busboot/internal/installpolicy"
)

var (
	// ErrUnknownDomain is returned for a domain with no configured directory.
	ErrUnknownDomain = errors.New("unknown directory domain")
	// ErrUnknownUser is returned for a user absent from a known domain.
	ErrUnknownUser = errors.New("user not found in directory")
)

// Static serves group memberships from configuration.
type Static struct {
	domains map[string]map[string][]string
}

// NewStatic builds a provider from the configured directories.
func NewStatic(dirs map[string]*config.Directory) *Static {
	s := &Static{domains: make(map[string]map[string][]string, len(dirs))}
	for domain, dir := range dirs {
		members := make(map[string][]string, len(dir.Members))
		for user, groups := range dir.Members {
			members[user] = slices.Clone(groups)
		}
		s.domains[domain] = members
	}
	return s
}

// Groups returns the groups of user in domain.
func (s *Static) Groups(ctx context.Context, user, domain string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	members, ok := s.domains[domain]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownDomain, domain)
	}
	groups, ok := members[user]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownUser, user)
	}
	return slices.Clone(groups), nil
}

// WithTimeout bounds every call to provider by d. A zero or negative d
// returns provider unchanged. The provider keeps running in the background
// after the deadline if it ignores its context.
func WithTimeout(provider installpolicy.GroupMembershipProvider, d time.Duration) installpolicy.GroupMembershipProvider {
	if d <= 0 {
		return provider
	}
	return func(ctx context.Context, user, domain string) ([]string, error) {
		ctx, cancel := context.WithTimeout(ctx, d)
		defer cancel()

		type result struct {
			groups []string
			err    error
		}
		done := make(chan result, 1)
		go func() {
			groups, err := provider(ctx, user, domain)
			done <- result{groups: groups, err: err}
		}()

		select {
		case r := <-done:
			return r.groups, r.err
		case <-ctx.Done():
			return nil, fmt.Errorf("lookup exceeded %s: %w", d, ctx.Err())
		}
	}
}

// PerDomainTimeouts routes each lookup through provider with the timeout
// configured for its domain.
func PerDomainTimeouts(provider installpolicy.GroupMembershipProvider, dirs map[string]*config.Directory) installpolicy.GroupMembershipProvider {
	bounded := make(map[string]installpolicy.GroupMembershipProvider, len(dirs))
	for domain, dir := range dirs {
		if dir.Timeout > 0 {
			bounded[domain] = WithTimeout(provider, dir.Timeout)
		}
	}
	return func(ctx context.Context, user, domain string) ([]string, error) {
		if p, ok := bounded[domain]; ok {
			return p(ctx, user, domain)
		}
		return provider(ctx, user, domain)
	}
}
