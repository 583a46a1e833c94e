// Package common defines sentinel errors shared by the repository, service and
// transport layers of fittrack. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")
	ErrSchemaMissing   = errors.New("database schema is not provisioned")

	// Service-level errors.
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")
	ErrForbidden      = errors.New("forbidden")

	// Validation errors (missing or malformed fields, weak password).
	ErrorValidation = errors.New("validation error")

	// Auth errors. Every token failure (malformed, bad signature, expired)
	// collapses into this single value.
	ErrInvalidToken = errors.New("invalid token")
)
