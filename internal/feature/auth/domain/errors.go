// Package domain defines domain-level errors for the auth feature.
package domain

import "errors"

// Domain errors for auth persistence operations.
// Lookups that find nothing do not use these: they return a nil record and a nil error.
var (
	// ErrUserNotFound indicates that an update targeted a user id with no row.
	ErrUserNotFound = errors.New("user not found")

	// ErrUnsupportedDialect is returned when a database handle speaks a SQL dialect
	// other than MySQL, PostgreSQL or SQLite.
	ErrUnsupportedDialect = errors.New("unsupported sql dialect")

	// ErrDialectMismatch is returned by a dialect-specific adapter factory
	// when it is handed a connection of another dialect.
	ErrDialectMismatch = errors.New("database handle does not match adapter dialect")

	// ErrSchemaMismatch indicates that an existing table lacks columns the adapter reads or writes.
	ErrSchemaMismatch = errors.New("auth tables do not match the expected schema")

	// ErrVerificationTokenExists indicates that the (identifier, token) pair is already stored.
	ErrVerificationTokenExists = errors.New("verification token already exists")

	// ErrVerificationTokenExpired indicates an attempt to store a token whose expiry has passed.
	ErrVerificationTokenExpired = errors.New("verification token already expired")
)
