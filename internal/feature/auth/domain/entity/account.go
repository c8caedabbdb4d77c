package entity

// Account is a third-party identity linked to a user.
// The pair (Provider, ProviderAccountID) identifies exactly one account.
type Account struct {
	UserID            string
	Type              string
	Provider          string
	ProviderAccountID string
	RefreshToken      *string
	AccessToken       *string
	// ExpiresAt is the access token expiry in unix seconds, as issued by the provider.
	ExpiresAt    *int64
	TokenType    *string
	Scope        *string
	IDToken      *string
	SessionState *string
}

// Key returns the composite primary key of the account.
func (a Account) Key() AccountKey {
	return AccountKey{Provider: a.Provider, ProviderAccountID: a.ProviderAccountID}
}

// AccountKey is the composite primary key of an account.
type AccountKey struct {
	Provider          string
	ProviderAccountID string
}
