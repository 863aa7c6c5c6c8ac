// Package hcl provides the HCL implementation of config.Loader. It parses
// `.hcl` files, evaluates expressions against a small set of launch
// variables and translates the blocks into the format-agnostic config.Model.
//
// Expressions may reference:
//
//	env.NAME       environment variables of the process
//	machine_name   the current host name
//
// and call the lower, upper and format functions.
package hcl
