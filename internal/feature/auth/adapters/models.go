package adapters

import (
	"auth_adapter/internal/feature/auth/domain/entity"
	"auth_adapter/internal/feature/auth/schema"
)

// UserModel is the GORM model for the users table.
type UserModel struct {
	ID            string           `gorm:"column:id;primaryKey"`
	Name          *string          `gorm:"column:name"`
	Email         *string          `gorm:"column:email"`
	EmailVerified schema.Timestamp `gorm:"column:email_verified"`
	Image         *string          `gorm:"column:image"`
	Phone         *string          `gorm:"column:phone"`
}

// TableName returns the table name for GORM.
func (UserModel) TableName() string {
	return schema.UsersTableName
}

// ToEntity converts the GORM model to a domain entity.
func (m *UserModel) ToEntity() *entity.User {
	u := &entity.User{
		ID:            m.ID,
		Name:          m.Name,
		EmailVerified: m.EmailVerified.Ptr(),
		Image:         m.Image,
		Phone:         m.Phone,
	}
	if m.Email != nil {
		u.Email = *m.Email
	}
	return u
}

// UserModelFromEntity converts a domain entity to a GORM model for dialect d.
func UserModelFromEntity(d schema.Dialect, u *entity.User) *UserModel {
	return &UserModel{
		ID:            u.ID,
		Name:          u.Name,
		Email:         nullableEmail(u.Email),
		EmailVerified: d.Timestamp(u.EmailVerified),
		Image:         u.Image,
		Phone:         u.Phone,
	}
}

// AccountModel is the GORM model for the accounts table.
type AccountModel struct {
	UserID            string  `gorm:"column:user_id"`
	Type              string  `gorm:"column:type"`
	Provider          string  `gorm:"column:provider;primaryKey"`
	ProviderAccountID string  `gorm:"column:provider_account_id;primaryKey"`
	RefreshToken      *string `gorm:"column:refresh_token"`
	AccessToken       *string `gorm:"column:access_token"`
	ExpiresAt         *int64  `gorm:"column:expires_at"`
	TokenType         *string `gorm:"column:token_type"`
	Scope             *string `gorm:"column:scope"`
	IDToken           *string `gorm:"column:id_token"`
	SessionState      *string `gorm:"column:session_state"`
}

// TableName returns the table name for GORM.
func (AccountModel) TableName() string {
	return schema.AccountsTableName
}

// ToEntity converts the GORM model to a domain entity.
func (m *AccountModel) ToEntity() *entity.Account {
	return &entity.Account{
		UserID:            m.UserID,
		Type:              m.Type,
		Provider:          m.Provider,
		ProviderAccountID: m.ProviderAccountID,
		RefreshToken:      m.RefreshToken,
		AccessToken:       m.AccessToken,
		ExpiresAt:         m.ExpiresAt,
		TokenType:         m.TokenType,
		Scope:             m.Scope,
		IDToken:           m.IDToken,
		SessionState:      m.SessionState,
	}
}

// AccountModelFromEntity converts a domain entity to a GORM model.
func AccountModelFromEntity(a *entity.Account) *AccountModel {
	return &AccountModel{
		UserID:            a.UserID,
		Type:              a.Type,
		Provider:          a.Provider,
		ProviderAccountID: a.ProviderAccountID,
		RefreshToken:      a.RefreshToken,
		AccessToken:       a.AccessToken,
		ExpiresAt:         a.ExpiresAt,
		TokenType:         a.TokenType,
		Scope:             a.Scope,
		IDToken:           a.IDToken,
		SessionState:      a.SessionState,
	}
}

// SessionModel is the GORM model for the sessions table.
// The table has no primary key; rows are addressed by session_token.
type SessionModel struct {
	UserID       string           `gorm:"column:user_id"`
	SessionToken string           `gorm:"column:session_token"`
	Expires      schema.Timestamp `gorm:"column:expires"`
}

// TableName returns the table name for GORM.
func (SessionModel) TableName() string {
	return schema.SessionsTableName
}

// ToEntity converts the GORM model to a domain entity.
func (m *SessionModel) ToEntity() *entity.Session {
	return &entity.Session{
		SessionToken: m.SessionToken,
		UserID:       m.UserID,
		Expires:      m.Expires.Time,
	}
}

// SessionModelFromEntity converts a domain entity to a GORM model for dialect d.
func SessionModelFromEntity(d schema.Dialect, s *entity.Session) *SessionModel {
	return &SessionModel{
		UserID:       s.UserID,
		SessionToken: s.SessionToken,
		Expires:      d.Timestamp(&s.Expires),
	}
}

// VerificationTokenModel is the GORM model for the verification_tokens table.
type VerificationTokenModel struct {
	Identifier string           `gorm:"column:id;primaryKey"`
	Token      string           `gorm:"column:token;primaryKey"`
	Expires    schema.Timestamp `gorm:"column:expires"`
}

// TableName returns the table name for GORM.
func (VerificationTokenModel) TableName() string {
	return schema.VerificationTokensTableName
}

// ToEntity converts the GORM model to a domain entity.
func (m *VerificationTokenModel) ToEntity() *entity.VerificationToken {
	return &entity.VerificationToken{
		Identifier: m.Identifier,
		Token:      m.Token,
		Expires:    m.Expires.Time,
	}
}

// VerificationTokenModelFromEntity converts a domain entity to a GORM model for dialect d.
func VerificationTokenModelFromEntity(d schema.Dialect, v *entity.VerificationToken) *VerificationTokenModel {
	return &VerificationTokenModel{
		Identifier: v.Identifier,
		Token:      v.Token,
		Expires:    d.Timestamp(&v.Expires),
	}
}

// nullableEmail stores an empty address as NULL.
func nullableEmail(email string) *string {
	if email == "" {
		return nil
	}
	return &email
}
