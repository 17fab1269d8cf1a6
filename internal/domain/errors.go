package domain

import "errors"

var (
	// ErrNotFound is returned when the vehicle or ledger row being operated
	// on does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrConflict is returned when a version check fails because the record
	// was modified concurrently. The caller must re-read and retry.
	ErrConflict = errors.New("record was modified concurrently")

	// ErrInvalidInput is returned for requests rejected before any state
	// mutation: missing required fields, non-positive day counts, unknown
	// rental or parking types.
	ErrInvalidInput = errors.New("invalid input")
)
