// Package cli provides the interactive progressboard terminal client.
//
// It wires configuration, local token storage, the auth and query clients
// and an interactive REPL. The token survives restarts in a local sqlite
// database, so a user stays signed in until logout or until the query
// endpoint rejects the token.
//
// Commands:
//   - login / logout
//   - profile, xp, progress: dashboard sections rendered as cards
//   - export: writes the charts to a directory or an S3 bucket
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
