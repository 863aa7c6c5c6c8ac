package installpolicy

import (
	"context"
	"fmt"
)

// GroupMembershipProvider returns the names of the groups that user belongs
// to in the given directory domain.
type GroupMembershipProvider func(ctx context.Context, user, domain string) ([]string, error)

// LaunchContext is the snapshot of startup facts a rule may inspect.
type LaunchContext struct {
	// Arguments are the positional launch tokens, in order.
	Arguments   []string
	MachineName string
	Groups      GroupMembershipProvider
}

// Reason names the convention that produced a Decision.
type Reason int

const (
	ReasonDefault Reason = iota
	ReasonExplicitFlag
	ReasonMachineNameConvention
	ReasonGroupMembershipConvention
)

func (r Reason) String() string {
	switch r {
	case ReasonDefault:
		return "default"
	case ReasonExplicitFlag:
		return "explicit_flag"
	case ReasonMachineNameConvention:
		return "machine_name_convention"
	case ReasonGroupMembershipConvention:
		return "group_membership_convention"
	default:
		return fmt.Sprintf("reason(%d)", int(r))
	}
}

// Decision is the verdict of a rule.
type Decision struct {
	ShouldInstall bool
	Reason        Reason
}

// DirectoryLookupError reports a failed group membership lookup.
type DirectoryLookupError struct {
	User   string
	Domain string
	Err    error
}

func (e *DirectoryLookupError) Error() string {
	return fmt.Sprintf("group lookup for user %q in domain %q failed: %v", e.User, e.Domain, e.Err)
}

func (e *DirectoryLookupError) Unwrap() error {
	return e.Err
}
