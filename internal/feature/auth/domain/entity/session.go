package entity

import "time"

// Session represents a database-backed login session owned by a user.
type Session struct {
	// SessionToken is the lookup key handed to the client.
	// It is intended to be unique, but storage does not enforce it.
	SessionToken string
	UserID       string
	Expires      time.Time
}

// SessionPatch describes a partial update of the session identified by SessionToken.
type SessionPatch struct {
	SessionToken string
	UserID       *string
	Expires      *time.Time
}

// SessionAndUser pairs a session with its owning user.
type SessionAndUser struct {
	Session Session
	User    User
}
