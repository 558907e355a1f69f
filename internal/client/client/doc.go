// Package client talks to the remote document-management API.
//
// # Overview
//
// The package provides:
//  1. The Client interface: register, OTP request and validation, document
//     search, multipart upload and plain file download.
//  2. HTTPClient, a JSON-over-HTTP implementation. Every response is decoded
//     into a typed struct at this boundary; a body that does not match is
//     reported as ErrMalformedResponse instead of leaking absent fields to
//     callers.
//  3. InitDatabase and RunMigrations, which open the local SQLite store and
//     apply the embedded goose migrations.
//
// # Error Handling
//
// Every failed call returns a *RemoteError whose Message is safe to show to
// the user. Match the cause with errors.Is: ErrUnauthorized (401/403),
// ErrUnavailable (no response) and ErrMalformedResponse (2xx with a body we
// could not use).
package client
