// Package repository defines the persistence contracts of the auth feature.
// They are shaped by the authentication framework that consumes them.
package repository

import (
	"context"

	"auth_adapter/internal/feature/auth/domain/entity"
)

// Adapter is the full set of storage operations the authentication framework calls.
//
// Lookups that match nothing return a nil record and a nil error; an error always
// means the storage layer failed or rejected the statement.
type Adapter interface {
	// CreateUser stores a new user under a freshly generated id and returns it.
	CreateUser(ctx context.Context, user entity.User) (*entity.User, error)

	// GetUser returns the id, email and emailVerified of the user with the given id.
	GetUser(ctx context.Context, id string) (*entity.User, error)

	// GetUserByEmail returns the same projection as GetUser, looked up by email.
	// When several users share an email, the one with the lowest id is returned.
	GetUserByEmail(ctx context.Context, email string) (*entity.User, error)

	// GetUserByAccount returns the user that owns the linked account.
	GetUserByAccount(ctx context.Context, key entity.AccountKey) (*entity.User, error)

	// UpdateUser applies the non-nil fields of patch and returns the stored user.
	UpdateUser(ctx context.Context, patch entity.UserPatch) (*entity.User, error)

	// DeleteUser removes the user; its accounts and sessions go with it.
	DeleteUser(ctx context.Context, id string) error

	// LinkAccount stores a linked account. A duplicate key fails.
	LinkAccount(ctx context.Context, account entity.Account) (*entity.Account, error)

	// UnlinkAccount removes a linked account. Removing a missing account is not an error.
	UnlinkAccount(ctx context.Context, key entity.AccountKey) error

	CreateSession(ctx context.Context, session entity.Session) (*entity.Session, error)
	GetSessionAndUser(ctx context.Context, sessionToken string) (*entity.SessionAndUser, error)
	UpdateSession(ctx context.Context, patch entity.SessionPatch) (*entity.Session, error)
	DeleteSession(ctx context.Context, sessionToken string) error

	CreateVerificationToken(ctx context.Context, token entity.VerificationToken) (*entity.VerificationToken, error)

	// UseVerificationToken deletes the matching token and returns it.
	// A token that was already consumed yields nil, never an error.
	UseVerificationToken(ctx context.Context, key entity.VerificationTokenKey) (*entity.VerificationToken, error)
}

// VerificationTokenStore persists single-use verification tokens.
// Use must delete and return the token atomically: of two concurrent callers
// for the same key, exactly one receives the token.
type VerificationTokenStore interface {
	Create(ctx context.Context, token entity.VerificationToken) (*entity.VerificationToken, error)
	Use(ctx context.Context, key entity.VerificationTokenKey) (*entity.VerificationToken, error)
}
