// Package repository defines error types that are reused across
// multiple repositories. These sentinel values allow higher layers such
// as handlers to distinguish between different failure scenarios. For
// example, ErrForbidden indicates that the current user is not
// authorized to perform an operation on a resource owned by someone
// else, while ErrStaleState signals that a guarded state change matched
// zero rows because another writer moved the record first.
package repository

import "errors"

// ErrForbidden is returned when the caller attempts an operation on a
// resource they do not own. Handlers should translate this into an
// HTTP 403 response.
var ErrForbidden = errors.New("forbidden")

// ErrStaleState is returned when a guarded status or payment update
// affects zero rows: the record exists but is no longer in a state the
// requested change is legal from. Handlers should translate this into
// an HTTP 409 response prompting the client to refresh.
var ErrStaleState = errors.New("state changed, refresh required")

// ErrNotFound is returned when a referenced record does not exist.
// Handlers should translate this into an HTTP 404 response.
var ErrNotFound = errors.New("not found")
