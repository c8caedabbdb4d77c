// Package adapters implements the auth persistence contract on top of GORM.
//
// One Adapter serves MySQL, PostgreSQL and SQLite. The dialect is taken from the
// *gorm.DB handle, which stays owned by the caller.
package adapters

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"auth_adapter/internal/feature/auth/domain"
	"auth_adapter/internal/feature/auth/domain/entity"
	"auth_adapter/internal/feature/auth/domain/repository"
	"auth_adapter/internal/feature/auth/schema"
)

// Adapter is the GORM implementation of repository.Adapter.
type Adapter struct {
	db      *gorm.DB
	dialect schema.Dialect
	newID   func() string
	tokens  repository.VerificationTokenStore
	log     zerolog.Logger
}

// Compile-time check to ensure Adapter implements repository.Adapter.
var _ repository.Adapter = (*Adapter)(nil)

// Option configures an Adapter.
type Option func(*Adapter)

// WithIDGenerator replaces the user id generator. The default is a random UUID.
func WithIDGenerator(gen func() string) Option {
	return func(a *Adapter) {
		if gen != nil {
			a.newID = gen
		}
	}
}

// WithLogger sets the logger used for debug diagnostics.
func WithLogger(l zerolog.Logger) Option {
	return func(a *Adapter) {
		a.log = l
	}
}

// WithVerificationTokenStore moves verification tokens out of the verification_tokens table.
func WithVerificationTokenStore(store repository.VerificationTokenStore) Option {
	return func(a *Adapter) {
		a.tokens = store
	}
}

// New creates an Adapter for whatever dialect db speaks.
func New(db *gorm.DB, opts ...Option) (*Adapter, error) {
	d, err := schema.DialectOf(db)
	if err != nil {
		return nil, err
	}

	a := &Adapter{
		db:      db,
		dialect: d,
		newID:   uuid.NewString,
		log:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.tokens == nil {
		a.tokens = newVerificationTokenSQL(db, d, a.log)
	}
	return a, nil
}

// NewMySQL creates an Adapter and fails with domain.ErrDialectMismatch unless db is MySQL.
func NewMySQL(db *gorm.DB, opts ...Option) (*Adapter, error) {
	return newFor(schema.MySQL, db, opts...)
}

// NewPostgres creates an Adapter and fails with domain.ErrDialectMismatch unless db is PostgreSQL.
func NewPostgres(db *gorm.DB, opts ...Option) (*Adapter, error) {
	return newFor(schema.Postgres, db, opts...)
}

// NewSQLite creates an Adapter and fails with domain.ErrDialectMismatch unless db is SQLite.
func NewSQLite(db *gorm.DB, opts ...Option) (*Adapter, error) {
	return newFor(schema.SQLite, db, opts...)
}

func newFor(want schema.Dialect, db *gorm.DB, opts ...Option) (*Adapter, error) {
	a, err := New(db, opts...)
	if err != nil {
		return nil, err
	}
	if a.dialect != want {
		return nil, fmt.Errorf("%w: want %s, got %s", domain.ErrDialectMismatch, want, a.dialect)
	}
	return a, nil
}

// Dialect returns the SQL dialect the adapter writes.
func (a *Adapter) Dialect() schema.Dialect {
	return a.dialect
}

// CreateVerificationToken stores a verification token.
func (a *Adapter) CreateVerificationToken(ctx context.Context, token entity.VerificationToken) (*entity.VerificationToken, error) {
	return a.tokens.Create(ctx, token)
}

// UseVerificationToken consumes a verification token.
func (a *Adapter) UseVerificationToken(ctx context.Context, key entity.VerificationTokenKey) (*entity.VerificationToken, error) {
	return a.tokens.Use(ctx, key)
}
