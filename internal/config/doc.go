// Package config defines the format-agnostic model of an endpoint's bootstrap
// configuration, along with the Loader interface implemented by the concrete
// file formats.
//
// The Model is the single source the app package reads: the endpoint name,
// the installer policy, the static directory data used by group membership
// rules and the publisher routes. Concrete loaders (HCL, YAML) live in their
// own packages.
package config
