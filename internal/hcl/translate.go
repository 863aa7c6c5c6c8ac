package hcl

import (
	"fmt"
	"time"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/vk/busboot/internal/config"
)

// translateFile converts the decoded blocks of one file into a model.
func translateFile(root *fileRoot, evalCtx *hcl.EvalContext, source string) (*config.Model, error) {
	model := config.NewModel()
	if root.Endpoint != "" {
		model.Endpoint, model.EndpointSource = root.Endpoint, source
	}

	if len(root.Installers) > 1 {
		return nil, fmt.Errorf("%s: at most one installers block is allowed, found %d", source, len(root.Installers))
	}
	if len(root.Installers) == 1 {
		installers, err := translateInstallers(root.Installers[0], evalCtx, source)
		if err != nil {
			return nil, err
		}
		model.Installers = installers
	}

	for _, block := range root.Directories {
		dir, err := translateDirectory(block, source)
		if err != nil {
			return nil, err
		}
		if err := model.Merge(&config.Model{Directories: map[string]*config.Directory{dir.Domain: dir}}); err != nil {
			return nil, err
		}
	}

	for _, block := range root.Publishers {
		model.Publishers = append(model.Publishers, &config.Publisher{
			EventType: block.EventType,
			Endpoint:  block.Endpoint,
			Source:    source,
		})
	}
	return model, nil
}

func translateInstallers(block *installersBlock, evalCtx *hcl.EvalContext, source string) (*config.Installers, error) {
	installers := &config.Installers{Combine: block.Combine, Source: source}
	for _, rb := range block.Rules {
		rule, err := translateRule(rb, evalCtx)
		if err != nil {
			return nil, fmt.Errorf("%s: rule %q: %w", source, rb.Kind, err)
		}
		installers.Rules = append(installers.Rules, rule)
	}
	return installers, nil
}

// translateRule decodes the rule body with the schema of its kind.
func translateRule(rb *ruleBlock, evalCtx *hcl.EvalContext) (*config.Rule, error) {
	rule := &config.Rule{Kind: rb.Kind}
	var diags hcl.Diagnostics

	switch rb.Kind {
	case config.RuleExplicitFlag:
		var args explicitFlagArgs
		diags = gohcl.DecodeBody(rb.Body, evalCtx, &args)
		rule.Flag = args.Flag
	case config.RuleMachineName:
		var args machineNameArgs
		diags = gohcl.DecodeBody(rb.Body, evalCtx, &args)
		rule.ExcludedSuffix, rule.CaseSensitive = args.ExcludedSuffix, args.CaseSensitive
	case config.RuleGroupMembership:
		var args groupMembershipArgs
		diags = gohcl.DecodeBody(rb.Body, evalCtx, &args)
		rule.User, rule.Domain, rule.ExcludedGroup = args.User, args.Domain, args.ExcludedGroup
	case config.RuleAlways:
		var args alwaysArgs
		diags = gohcl.DecodeBody(rb.Body, evalCtx, &args)
		rule.Value = args.Value
	default:
		return nil, fmt.Errorf("unknown rule kind")
	}

	if diags.HasErrors() {
		return nil, diags
	}
	return rule, nil
}

func translateDirectory(block *directoryBlock, source string) (*config.Directory, error) {
	dir := &config.Directory{
		Domain:  block.Domain,
		Members: make(map[string][]string, len(block.Members)),
		Source:  source,
	}
	if block.Timeout != "" {
		d, err := time.ParseDuration(block.Timeout)
		if err != nil {
			return nil, fmt.Errorf("%s: directory %q: invalid timeout: %w", source, block.Domain, err)
		}
		dir.Timeout = d
	}
	for _, m := range block.Members {
		if _, dup := dir.Members[m.User]; dup {
			return nil, fmt.Errorf("%s: directory %q: member %q declared twice", source, block.Domain, m.User)
		}
		dir.Members[m.User] = m.Groups
	}
	return dir, nil
}
