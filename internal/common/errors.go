// Package common defines sentinel errors and shared constants used across
// the server, its repositories and the admin CLI. Callers should match
// these values with errors.Is; layers add context with %w wrapping.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound          = errors.New("not found")
	ErrDuplicateCredential = errors.New("already exists")

	// Service-level errors.
	ErrorInternal         = errors.New("internal error")
	ErrValidation         = errors.New("validation error")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAlreadyAssigned    = errors.New("blog already assigned to an editor")
	ErrForbidden          = errors.New("forbidden")

	// Auth errors.
	ErrUnauthenticated = errors.New("access denied")
	ErrInvalidToken    = errors.New("invalid token")
	ErrTokenExpired    = errors.New("token expired")
)
