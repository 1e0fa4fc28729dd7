// Package store holds the durable and ephemeral persistence interfaces and
// their MongoDB/Redis implementations. Services depend on the interfaces so
// tests can swap in in-memory fakes.
package store

import "errors"

// ErrNotFound is returned when a lookup matches no record.
var ErrNotFound = errors.New("record not found")

// ErrDuplicateEmail is returned when inserting a user whose email is taken.
var ErrDuplicateEmail = errors.New("email already registered")
