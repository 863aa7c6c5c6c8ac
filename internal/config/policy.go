package config

import (
	"fmt"
	"strings"

	"github.com/vk/busboot/internal/installpolicy"
)

// PolicyRule translates the installers block into a policy rule. Without an
// installers block installers never run.
func (m *Model) PolicyRule() (installpolicy.Rule, error) {
	if m.Installers == nil {
		return installpolicy.AlwaysRule{Value: false}, nil
	}

	rules := make([]installpolicy.Rule, 0, len(m.Installers.Rules))
	for i, r := range m.Installers.Rules {
		rule, err := r.policyRule()
		if err != nil {
			return nil, fmt.Errorf("installers rule #%d (%s) in %s: %w", i+1, r.Kind, m.Installers.Source, err)
		}
		rules = append(rules, rule)
	}

	switch strings.ToLower(m.Installers.Combine) {
	case "", CombineAll:
		if len(rules) == 1 {
			return rules[0], nil
		}
		return installpolicy.AllOf(rules...), nil
	case CombineAny:
		return installpolicy.AnyOf(rules...), nil
	default:
		return nil, fmt.Errorf("installers in %s: invalid combine %q: must be %q or %q", m.Installers.Source, m.Installers.Combine, CombineAll, CombineAny)
	}
}

func (r *Rule) policyRule() (installpolicy.Rule, error) {
	switch r.Kind {
	case RuleExplicitFlag:
		if r.Flag == "" {
			return nil, fmt.Errorf("flag must not be empty")
		}
		return installpolicy.ExplicitFlagRule{Flag: r.Flag}, nil
	case RuleMachineName:
		if r.ExcludedSuffix == "" {
			return nil, fmt.Errorf("excluded_suffix must not be empty")
		}
		return installpolicy.MachineNameRule{ExcludedSuffix: r.ExcludedSuffix, CaseSensitive: r.CaseSensitive}, nil
	case RuleGroupMembership:
		var missing []string
		if r.User == "" {
			missing = append(missing, "user")
		}
		if r.Domain == "" {
			missing = append(missing, "domain")
		}
		if r.ExcludedGroup == "" {
			missing = append(missing, "excluded_group")
		}
		if len(missing) > 0 {
			return nil, fmt.Errorf("missing required attributes: %s", strings.Join(missing, ", "))
		}
		return installpolicy.GroupMembershipRule{User: r.User, Domain: r.Domain, ExcludedGroup: r.ExcludedGroup}, nil
	case RuleAlways:
		return installpolicy.AlwaysRule{Value: r.Value}, nil
	default:
		return nil, fmt.Errorf("unknown rule kind %q", r.Kind)
	}
}
