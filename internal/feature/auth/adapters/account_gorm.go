package adapters

import (
	"context"

	"auth_adapter/internal/feature/auth/domain/entity"
	"auth_adapter/internal/feature/auth/schema"
)

// LinkAccount stores a linked account. An existing (provider, providerAccountId)
// pair is never overwritten: the insert fails and the storage error is returned as is.
func (a *Adapter) LinkAccount(ctx context.Context, account entity.Account) (*entity.Account, error) {
	model := AccountModelFromEntity(&account)
	if err := a.db.WithContext(ctx).Create(model).Error; err != nil {
		if IsConstraintViolation(err) {
			a.log.Debug().Err(err).
				Str("provider", account.Provider).
				Str("user_id", account.UserID).
				Msg("account link rejected by constraint")
		}
		return nil, err
	}
	return model.ToEntity(), nil
}

// UnlinkAccount removes a linked account. Removing a missing account is not an error.
func (a *Adapter) UnlinkAccount(ctx context.Context, key entity.AccountKey) error {
	return a.db.WithContext(ctx).
		Where(schema.Accounts.Provider.Eq(key.Provider)).
		Where(schema.Accounts.ProviderAccountID.Eq(key.ProviderAccountID)).
		Delete(&AccountModel{}).Error
}
