package persistence

import "errors"

var (
	// ErrNotFound is returned when the requested record does not exist.
	ErrNotFound = errors.New("persistence: not found")
	// ErrConstraintViolation is returned for writes that break a schema
	// constraint or arrive with missing required fields.
	ErrConstraintViolation = errors.New("persistence: constraint violation")
)
