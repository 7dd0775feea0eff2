// Package cli provides the interactive Bookify command-line client.
//
// It wires configuration, the local credential database, the review service
// client, the book catalog and a read-eval-print loop. On start the stored
// session, if any, is validated with the review service before the first
// prompt.
//
// Key features:
//   - Register / Login / Logout
//   - Search the catalog and open a book with its reviews
//   - Write, edit and delete your own reviews
//   - List all of your reviews ("mine")
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
