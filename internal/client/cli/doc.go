// Package cli provides the interactive DocVault command-line client.
//
// It wires configuration, the local session store, the document API services
// and a REPL. Typical flow: log in with a mobile number and an OTP, search
// documents by category, date and tags, then show or download the results,
// or upload a new document.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli
