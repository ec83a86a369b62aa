// Package apperrors defines the error kinds shared across the service.
// Handlers map them onto HTTP status codes; everything else just wraps.
package apperrors

import "errors"

var (
	// ErrValidation marks a request that is malformed before it ever
	// touches the datastore (missing title, missing product id, catalog
	// entry without a name).
	ErrValidation = errors.New("validation failed")

	// ErrNotFound is a lookup miss. It is a normal result, not a failure:
	// callers distinguish "no mapping learned yet" from a real error.
	ErrNotFound = errors.New("not found")

	// ErrStore wraps a failure of the backing datastore. Never retried
	// internally; surfaced with the underlying message attached.
	ErrStore = errors.New("store failure")
)
