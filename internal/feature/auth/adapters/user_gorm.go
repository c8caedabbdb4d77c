package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"auth_adapter/internal/feature/auth/domain"
	"auth_adapter/internal/feature/auth/domain/entity"
	"auth_adapter/internal/feature/auth/schema"
)

// userProjection is what the lookups return: the columns the framework needs to
// resolve an identity, nothing more.
var userProjection = schema.Names(schema.Users.ID, schema.Users.Email, schema.Users.EmailVerified)

// CreateUser inserts the user under a freshly generated id. The id on the input is ignored.
func (a *Adapter) CreateUser(ctx context.Context, user entity.User) (*entity.User, error) {
	user.ID = a.newID()
	model := UserModelFromEntity(a.dialect, &user)
	if err := a.db.WithContext(ctx).Create(model).Error; err != nil {
		return nil, err
	}
	return model.ToEntity(), nil
}

// GetUser retrieves a user by id. It returns nil when there is no such user.
func (a *Adapter) GetUser(ctx context.Context, id string) (*entity.User, error) {
	var model UserModel
	err := a.db.WithContext(ctx).
		Select(userProjection).
		Where(schema.Users.ID.Eq(id)).
		Take(&model).Error
	return userOrNil(&model, err)
}

// GetUserByEmail retrieves a user by email address. Emails are not constrained to be
// unique, so the user with the lowest id wins.
func (a *Adapter) GetUserByEmail(ctx context.Context, email string) (*entity.User, error) {
	var model UserModel
	err := a.db.WithContext(ctx).
		Select(userProjection).
		Where(schema.Users.Email.Eq(email)).
		Order(schema.Users.ID.Qualified()).
		Take(&model).Error
	return userOrNil(&model, err)
}

// GetUserByAccount retrieves the user owning the linked account.
func (a *Adapter) GetUserByAccount(ctx context.Context, key entity.AccountKey) (*entity.User, error) {
	var model UserModel
	err := a.db.WithContext(ctx).
		Select(userProjection).
		Joins(schema.JoinOn(schema.Accounts.UserID, schema.Users.ID)).
		Where(schema.Accounts.Provider.Eq(key.Provider)).
		Where(schema.Accounts.ProviderAccountID.Eq(key.ProviderAccountID)).
		Take(&model).Error
	return userOrNil(&model, err)
}

// UpdateUser writes the non-nil fields of patch and returns the full stored row.
// It returns domain.ErrUserNotFound when no user has the patch id.
func (a *Adapter) UpdateUser(ctx context.Context, patch entity.UserPatch) (*entity.User, error) {
	db := a.db.WithContext(ctx)

	if !patch.IsEmpty() {
		if err := db.Model(&UserModel{}).
			Where(schema.Users.ID.Eq(patch.ID)).
			Updates(a.userUpdates(patch)).Error; err != nil {
			return nil, err
		}
	}

	// RowsAffected is not a reliable existence check: MySQL reports 0 for unchanged rows.
	var model UserModel
	if err := db.Where(schema.Users.ID.Eq(patch.ID)).Take(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return model.ToEntity(), nil
}

// DeleteUser removes the user. Accounts and sessions go with it through the
// cascading foreign keys. Deleting a missing user is not an error.
func (a *Adapter) DeleteUser(ctx context.Context, id string) error {
	return a.db.WithContext(ctx).
		Where(schema.Users.ID.Eq(id)).
		Delete(&UserModel{}).Error
}

func (a *Adapter) userUpdates(patch entity.UserPatch) map[string]interface{} {
	updates := make(map[string]interface{}, 5)
	if patch.Name != nil {
		updates[schema.Users.Name.Name] = *patch.Name
	}
	if patch.Email != nil {
		updates[schema.Users.Email.Name] = nullableEmail(*patch.Email)
	}
	if patch.EmailVerified != nil {
		updates[schema.Users.EmailVerified.Name] = a.dialect.Timestamp(patch.EmailVerified)
	}
	if patch.Image != nil {
		updates[schema.Users.Image.Name] = *patch.Image
	}
	if patch.Phone != nil {
		updates[schema.Users.Phone.Name] = *patch.Phone
	}
	return updates
}

func userOrNil(model *UserModel, err error) (*entity.User, error) {
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToEntity(), nil
}
