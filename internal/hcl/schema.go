package hcl

import "github.com/hashicorp/hcl/v2"

// fileRoot is decoded from every file. Unknown blocks and attributes are
// rejected by gohcl.
type fileRoot struct {
	Endpoint    string             `hcl:"endpoint,optional"`
	Installers  []*installersBlock `hcl:"installers,block"`
	Directories []*directoryBlock  `hcl:"directory,block"`
	Publishers  []*publisherBlock  `hcl:"publisher,block"`
}

type installersBlock struct {
	Combine string       `hcl:"combine,optional"`
	Rules   []*ruleBlock `hcl:"rule,block"`
}

// ruleBlock keeps the body raw; its schema depends on the kind label.
type ruleBlock struct {
	Kind string   `hcl:"kind,label"`
	Body hcl.Body `hcl:",remain"`
}

type explicitFlagArgs struct {
	Flag string `hcl:"flag"`
}

type machineNameArgs struct {
	ExcludedSuffix string `hcl:"excluded_suffix"`
	CaseSensitive  bool   `hcl:"case_sensitive,optional"`
}

type groupMembershipArgs struct {
	User          string `hcl:"user"`
	Domain        string `hcl:"domain"`
	ExcludedGroup string `hcl:"excluded_group"`
}

type alwaysArgs struct {
	Value bool `hcl:"value"`
}

type directoryBlock struct {
	Domain  string         `hcl:"domain,label"`
	Timeout string         `hcl:"timeout,optional"`
	Members []*memberBlock `hcl:"member,block"`
}

type memberBlock struct {
	User   string   `hcl:"user,label"`
	Groups []string `hcl:"groups"`
}

type publisherBlock struct {
	EventType string `hcl:"event_type,label"`
	Endpoint  string `hcl:"endpoint"`
}
