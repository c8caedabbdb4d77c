package entity

import "time"

// VerificationToken is a single-use credential proving control of an identifier,
// usually an email address. Once consumed it no longer exists.
type VerificationToken struct {
	Identifier string
	Token      string
	Expires    time.Time
}

// Key returns the composite key used to consume the token.
func (v VerificationToken) Key() VerificationTokenKey {
	return VerificationTokenKey{Identifier: v.Identifier, Token: v.Token}
}

// VerificationTokenKey selects a verification token for consumption.
type VerificationTokenKey struct {
	Identifier string
	Token      string
}
