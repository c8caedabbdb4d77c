// Package schema declares the four auth tables once and renders them for each SQL dialect.
//
// Column names are part of the storage contract: renaming one breaks existing data.
// Uniqueness of users.email, sessions.session_token and verification_tokens.token is
// intended but not declared; see Options.EnforceUniqueness.
package schema

import (
	"gorm.io/gorm/clause"
)

// Column is a handle on one column, usable to build queries.
type Column struct {
	Table   string
	Name    string
	Type    Type
	NotNull bool
	// IntendedUnique marks a column that should be unique but is not constrained by default.
	IntendedUnique bool
}

// Qualified returns "table.column".
func (c Column) Qualified() string {
	return c.Table + "." + c.Name
}

// Clause returns the column as a GORM clause column, quoted by the dialector.
func (c Column) Clause() clause.Column {
	return clause.Column{Table: c.Table, Name: c.Name}
}

// Eq builds an equality predicate on the column.
func (c Column) Eq(value any) clause.Eq {
	return clause.Eq{Column: c.Clause(), Value: value}
}

// ForeignKey is a single-column reference that cascades on delete.
type ForeignKey struct {
	Column     Column
	References Column
	OnDelete   string
}

// Table is the dialect-neutral definition of one table.
type Table struct {
	Name        string
	Columns     []Column
	PrimaryKey  []Column
	ForeignKeys []ForeignKey
}

// UsersTable holds the column handles of the users table.
type UsersTable struct {
	ID            Column
	Name          Column
	Email         Column
	EmailVerified Column
	Image         Column
	Phone         Column
}

// AccountsTable holds the column handles of the accounts table.
type AccountsTable struct {
	UserID            Column
	Type              Column
	Provider          Column
	ProviderAccountID Column
	RefreshToken      Column
	AccessToken       Column
	ExpiresAt         Column
	TokenType         Column
	Scope             Column
	IDToken           Column
	SessionState      Column
}

// SessionsTable holds the column handles of the sessions table.
type SessionsTable struct {
	UserID       Column
	SessionToken Column
	Expires      Column
}

// VerificationTokensTable holds the column handles of the verification_tokens table.
// The id column carries the logical identifier (usually an email address).
type VerificationTokensTable struct {
	ID      Column
	Token   Column
	Expires Column
}

const (
	UsersTableName              = "users"
	AccountsTableName           = "accounts"
	SessionsTableName           = "sessions"
	VerificationTokensTableName = "verification_tokens"
)

const onDeleteCascade = "CASCADE"

var (
	Users = UsersTable{
		ID:            Column{Table: UsersTableName, Name: "id", Type: KeyTextType, NotNull: true},
		Name:          Column{Table: UsersTableName, Name: "name", Type: TextType},
		Email:         Column{Table: UsersTableName, Name: "email", Type: KeyTextType, IntendedUnique: true},
		EmailVerified: Column{Table: UsersTableName, Name: "email_verified", Type: TimestampType},
		Image:         Column{Table: UsersTableName, Name: "image", Type: TextType},
		Phone:         Column{Table: UsersTableName, Name: "phone", Type: TextType},
	}

	Accounts = AccountsTable{
		UserID:            Column{Table: AccountsTableName, Name: "user_id", Type: KeyTextType},
		Type:              Column{Table: AccountsTableName, Name: "type", Type: TextType, NotNull: true},
		Provider:          Column{Table: AccountsTableName, Name: "provider", Type: KeyTextType, NotNull: true},
		ProviderAccountID: Column{Table: AccountsTableName, Name: "provider_account_id", Type: KeyTextType, NotNull: true},
		RefreshToken:      Column{Table: AccountsTableName, Name: "refresh_token", Type: TextType},
		AccessToken:       Column{Table: AccountsTableName, Name: "access_token", Type: TextType},
		ExpiresAt:         Column{Table: AccountsTableName, Name: "expires_at", Type: IntegerType},
		TokenType:         Column{Table: AccountsTableName, Name: "token_type", Type: TextType},
		Scope:             Column{Table: AccountsTableName, Name: "scope", Type: TextType},
		IDToken:           Column{Table: AccountsTableName, Name: "id_token", Type: TextType},
		SessionState:      Column{Table: AccountsTableName, Name: "session_state", Type: TextType},
	}

	Sessions = SessionsTable{
		UserID:       Column{Table: SessionsTableName, Name: "user_id", Type: KeyTextType},
		SessionToken: Column{Table: SessionsTableName, Name: "session_token", Type: KeyTextType, IntendedUnique: true},
		Expires:      Column{Table: SessionsTableName, Name: "expires", Type: TimestampType},
	}

	VerificationTokens = VerificationTokensTable{
		ID:      Column{Table: VerificationTokensTableName, Name: "id", Type: KeyTextType},
		Token:   Column{Table: VerificationTokensTableName, Name: "token", Type: KeyTextType, IntendedUnique: true},
		Expires: Column{Table: VerificationTokensTableName, Name: "expires", Type: TimestampType},
	}
)

// Definition returns the table definition.
func (t UsersTable) Definition() Table {
	return Table{
		Name:       UsersTableName,
		Columns:    []Column{t.ID, t.Name, t.Email, t.EmailVerified, t.Image, t.Phone},
		PrimaryKey: []Column{t.ID},
	}
}

// Definition returns the table definition.
func (t AccountsTable) Definition() Table {
	return Table{
		Name: AccountsTableName,
		Columns: []Column{
			t.UserID, t.Type, t.Provider, t.ProviderAccountID, t.RefreshToken, t.AccessToken,
			t.ExpiresAt, t.TokenType, t.Scope, t.IDToken, t.SessionState,
		},
		PrimaryKey: []Column{t.Provider, t.ProviderAccountID},
		ForeignKeys: []ForeignKey{
			{Column: t.UserID, References: Users.ID, OnDelete: onDeleteCascade},
		},
	}
}

// Definition returns the table definition.
func (t SessionsTable) Definition() Table {
	return Table{
		Name:    SessionsTableName,
		Columns: []Column{t.UserID, t.SessionToken, t.Expires},
		ForeignKeys: []ForeignKey{
			{Column: t.UserID, References: Users.ID, OnDelete: onDeleteCascade},
		},
	}
}

// Definition returns the table definition.
func (t VerificationTokensTable) Definition() Table {
	return Table{
		Name:       VerificationTokensTableName,
		Columns:    []Column{t.ID, t.Token, t.Expires},
		PrimaryKey: []Column{t.ID, t.Token},
	}
}

// Tables returns every table, parents before children.
func Tables() []Table {
	return []Table{
		Users.Definition(),
		Accounts.Definition(),
		Sessions.Definition(),
		VerificationTokens.Definition(),
	}
}

// ColumnNames returns the column names of a table in declaration order.
func (t Table) ColumnNames() []string {
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
	}
	return names
}

// Names returns the qualified names of cols, for SELECT lists over joins.
func Names(cols ...Column) []string {
	out := make([]string, len(cols))
	for i, c := range cols {
		out[i] = c.Qualified()
	}
	return out
}

// JoinOn renders an inner join of child's table onto parent, e.g.
// "JOIN accounts ON accounts.user_id = users.id".
func JoinOn(child, parent Column) string {
	return "JOIN " + child.Table + " ON " + child.Qualified() + " = " + parent.Qualified()
}
