package domain

import "errors"

var (
	// Common domain errors
	ErrNotFound        = errors.New("entity not found")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrReadDatabaseRow = errors.New("failed to read database row")

	// ErrUpstreamStatus is returned when the schedule API answers with a non-200 status.
	ErrUpstreamStatus = errors.New("schedule api returned unexpected status")
)
