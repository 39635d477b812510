// Package app loads configuration and wires the key store, identity and
// message services for the CLI.
package app
