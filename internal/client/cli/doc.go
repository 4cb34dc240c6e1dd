// Package cli provides the interactive txledger command-line client.
//
// It wires configuration, the HTTP API client and a small REPL. Typical flow:
// register, login, then add and query transactions. The session cookie lives
// only in memory for the lifetime of the process.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See runREPL for the command list.
package cli
