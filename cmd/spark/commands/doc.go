// Package commands defines the spark CLI.
//
// Commands
//
//   - init         Create the local identity, or load it if one exists
//   - pubkey       Print the public key as JWK for publishing
//   - fingerprint  Print the identity fingerprint
//   - encrypt      Seal a message for a peer's public key
//   - decrypt      Open an envelope addressed to this identity
//   - reset        Delete the local identity
//
// # Implementation
//
// The root command loads configuration and builds the dependency graph
// (LevelDB key store, identity and message services, metrics) before any
// subcommand runs. The graph is closed after the command returns, whether or
// not it failed, so the database lock is always released.
package commands
