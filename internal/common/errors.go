// Package common defines shared constants and sentinel errors used across
// the server, the HTTP layer and the CLI client of txledger. Callers should
// use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors.
	ErrValidation = errors.New("validation error")

	// Credential store errors. ErrInvalidCredentials covers both an unknown
	// username and a wrong password.
	ErrDuplicateUsername  = errors.New("username already registered")
	ErrInvalidCredentials = errors.New("incorrect username or password")

	// Session errors.
	ErrUnauthenticated = errors.New("authentication required")
	ErrInvalidSession  = errors.New("invalid session")
)
