// Package api provides the Disk resources API client and its error taxonomy.
package api

import (
	"errors"
	"fmt"
)

// Sentinel errors for the benign API signals. Callers use these for flow
// control: a 404 on a metadata query is an existence check, not a failure,
// and a create against an existing path is reported, not aborted.
var (
	// ErrNotFound indicates a 404 on a metadata query.
	ErrNotFound = errors.New("resource not found")

	// ErrAlreadyExists indicates a create against a path that already exists.
	ErrAlreadyExists = errors.New("resource already exists")

	// ErrUploadCollision indicates an upload-URL response without an href,
	// which the service uses to say the path already has uploaded content.
	ErrUploadCollision = errors.New("path already has uploaded content")
)

// StatusError carries a non-success API response verbatim: the HTTP status
// and the service's message. It aborts the operation that triggered it but
// never rolls back earlier items in the same batch.
type StatusError struct {
	Status  int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("disk api: status %d", e.Status)
	}
	return fmt.Sprintf("disk api: status %d: %s", e.Status, e.Message)
}

// IsNotFound reports whether err is the benign not-found signal.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsUploadCollision reports whether err means the content is already there.
func IsUploadCollision(err error) bool {
	return errors.Is(err, ErrUploadCollision)
}
