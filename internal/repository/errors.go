// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios. For
// example, ErrNotFound indicates that a configuration id does not
// exist, which is a distinct outcome from an empty-but-valid result
// set, while ErrEmailExists signals that a registration collides
// with an existing account.
package repository

import "errors"

// ErrNotFound is returned when a lookup by id matches no row.
// Handlers should translate this into an HTTP 404 response.
var ErrNotFound = errors.New("not found")

// ErrEmailExists is returned when a user insert violates the unique
// email constraint. Handlers should translate this into an HTTP 409
// response.
var ErrEmailExists = errors.New("email already exists")
