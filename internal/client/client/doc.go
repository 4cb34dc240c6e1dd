// Package client talks to the txledger HTTP API on behalf of the CLI.
//
// HTTPClient keeps the session cookie issued by /login/ in memory and sends
// it with every later request; /logout/ drops it. It does not use a cookie
// jar because the server marks the cookie Secure and a jar would withhold it
// from plain http:// development servers.
//
// # Error Handling
//
// Transport failures wrap ErrUnavailable. Non-2xx answers are returned as
// *APIError, which unwraps to ErrUnauthorized, ErrNotFound, ErrRejected or
// ErrUnavailable depending on the status code.
package client
