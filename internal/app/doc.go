// Package app assembles an endpoint's bootstrap: it loads configuration,
// builds and freezes the routing table, prepares the launch context and, on
// Start, asks the installation policy whether the registered installers run.
// It is decoupled from any specific entrypoint like a CLI.
package app
