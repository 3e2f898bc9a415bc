// Package repository holds the sentinel errors of the storage layer.
// It imports no domain code; the store interfaces live next to their
// consumers in the domain packages, and internal/sqlite asserts that
// its implementations satisfy them.
package repository

import "errors"

var (
	// ErrNotFound is returned when a requested entity doesn't exist
	ErrNotFound = errors.New("not found")

	// ErrActiveSession is returned when the single-active-session
	// constraint rejects an insert
	ErrActiveSession = errors.New("an active session already exists for this user")

	// ErrForeignKeyViolation is returned when a foreign key constraint fails
	ErrForeignKeyViolation = errors.New("foreign key violation")
)
