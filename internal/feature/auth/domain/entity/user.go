// Package entity defines the domain entities for the auth feature.
package entity

import "time"

// User represents a person known to the authentication framework.
// Optional columns are pointers; a nil pointer is a NULL column.
type User struct {
	// ID is the externally generated primary key.
	ID string

	Name *string

	// Email is intended to be unique, but storage does not enforce it.
	Email string

	// EmailVerified is the time the address was confirmed, nil if never.
	EmailVerified *time.Time

	Image *string
	Phone *string
}

// UserPatch describes a partial update of a user.
// Nil fields are left unchanged; ID selects the row and is never written.
type UserPatch struct {
	ID            string
	Name          *string
	Email         *string
	EmailVerified *time.Time
	Image         *string
	Phone         *string
}

// IsEmpty reports whether the patch changes no column.
func (p UserPatch) IsEmpty() bool {
	return p.Name == nil && p.Email == nil && p.EmailVerified == nil && p.Image == nil && p.Phone == nil
}
