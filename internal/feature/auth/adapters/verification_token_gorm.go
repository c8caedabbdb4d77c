package adapters

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"auth_adapter/internal/feature/auth/domain/entity"
	"auth_adapter/internal/feature/auth/domain/repository"
	"auth_adapter/internal/feature/auth/schema"
)

// verificationTokenSQL stores verification tokens in the verification_tokens table.
type verificationTokenSQL struct {
	db      *gorm.DB
	dialect schema.Dialect
	log     zerolog.Logger
}

// Compile-time check to ensure verificationTokenSQL implements VerificationTokenStore.
var _ repository.VerificationTokenStore = (*verificationTokenSQL)(nil)

// NewVerificationTokenSQL creates a verification token store on db.
func NewVerificationTokenSQL(db *gorm.DB, log zerolog.Logger) (*verificationTokenSQL, error) {
	d, err := schema.DialectOf(db)
	if err != nil {
		return nil, err
	}
	return newVerificationTokenSQL(db, d, log), nil
}

func newVerificationTokenSQL(db *gorm.DB, d schema.Dialect, log zerolog.Logger) *verificationTokenSQL {
	return &verificationTokenSQL{db: db, dialect: d, log: log}
}

// Create persists a token and returns it with its expiry at column precision.
func (s *verificationTokenSQL) Create(ctx context.Context, token entity.VerificationToken) (*entity.VerificationToken, error) {
	model := VerificationTokenModelFromEntity(s.dialect, &token)
	if err := s.db.WithContext(ctx).Create(model).Error; err != nil {
		return nil, err
	}
	return model.ToEntity(), nil
}

// Use deletes the token and returns it. Of two concurrent callers for one token,
// exactly one gets it; the other gets nil.
func (s *verificationTokenSQL) Use(ctx context.Context, key entity.VerificationTokenKey) (*entity.VerificationToken, error) {
	if s.dialect.SupportsReturning() {
		return s.deleteReturning(ctx, key)
	}
	return s.compareAndDelete(ctx, key)
}

func (s *verificationTokenSQL) where(db *gorm.DB, key entity.VerificationTokenKey) *gorm.DB {
	return db.
		Where(schema.VerificationTokens.ID.Eq(key.Identifier)).
		Where(schema.VerificationTokens.Token.Eq(key.Token))
}

// deleteReturning consumes the token in a single DELETE ... RETURNING statement.
func (s *verificationTokenSQL) deleteReturning(ctx context.Context, key entity.VerificationTokenKey) (*entity.VerificationToken, error) {
	var deleted []VerificationTokenModel
	if err := s.where(s.db.WithContext(ctx), key).
		Clauses(clause.Returning{}).
		Delete(&deleted).Error; err != nil {
		return nil, err
	}
	if len(deleted) == 0 {
		return nil, nil
	}
	return deleted[0].ToEntity(), nil
}

// compareAndDelete reads the row, then deletes it by its full key. Only the caller
// whose DELETE removes the row owns the token.
func (s *verificationTokenSQL) compareAndDelete(ctx context.Context, key entity.VerificationTokenKey) (*entity.VerificationToken, error) {
	db := s.db.WithContext(ctx)

	var model VerificationTokenModel
	if err := s.where(db, key).Take(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	result := s.where(db, key).Delete(&VerificationTokenModel{})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		s.log.Debug().
			Str("identifier", key.Identifier).
			Msg("verification token consumed concurrently")
		return nil, nil
	}
	return model.ToEntity(), nil
}
