package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"auth_adapter/internal/feature/auth/domain/entity"
	"auth_adapter/internal/feature/auth/schema"
)

// sessionUserRow is one row of sessions joined with users.
// sessions.user_id is aliased so it does not collide with users.id.
type sessionUserRow struct {
	SessionToken  string           `gorm:"column:session_token"`
	SessionUserID string           `gorm:"column:session_user_id"`
	Expires       schema.Timestamp `gorm:"column:expires"`

	ID            string           `gorm:"column:id"`
	Name          *string          `gorm:"column:name"`
	Email         *string          `gorm:"column:email"`
	EmailVerified schema.Timestamp `gorm:"column:email_verified"`
	Image         *string          `gorm:"column:image"`
	Phone         *string          `gorm:"column:phone"`
}

var sessionUserColumns = append(
	[]string{
		schema.Sessions.SessionToken.Qualified(),
		schema.Sessions.UserID.Qualified() + " AS session_user_id",
		schema.Sessions.Expires.Qualified(),
	},
	schema.Names(
		schema.Users.ID, schema.Users.Name, schema.Users.Email,
		schema.Users.EmailVerified, schema.Users.Image, schema.Users.Phone,
	)...,
)

func (r *sessionUserRow) toEntity() *entity.SessionAndUser {
	user := UserModel{
		ID:            r.ID,
		Name:          r.Name,
		Email:         r.Email,
		EmailVerified: r.EmailVerified,
		Image:         r.Image,
		Phone:         r.Phone,
	}
	session := SessionModel{
		UserID:       r.SessionUserID,
		SessionToken: r.SessionToken,
		Expires:      r.Expires,
	}
	return &entity.SessionAndUser{
		Session: *session.ToEntity(),
		User:    *user.ToEntity(),
	}
}

// CreateSession persists a new session.
func (a *Adapter) CreateSession(ctx context.Context, session entity.Session) (*entity.Session, error) {
	model := SessionModelFromEntity(a.dialect, &session)
	if err := a.db.WithContext(ctx).Create(model).Error; err != nil {
		return nil, err
	}
	return model.ToEntity(), nil
}

// GetSessionAndUser retrieves a session together with its user.
// It returns nil when the token is unknown or the user is gone.
func (a *Adapter) GetSessionAndUser(ctx context.Context, sessionToken string) (*entity.SessionAndUser, error) {
	var rows []sessionUserRow
	if err := a.db.WithContext(ctx).
		Table(schema.SessionsTableName).
		Select(sessionUserColumns).
		Joins(schema.JoinOn(schema.Users.ID, schema.Sessions.UserID)).
		Where(schema.Sessions.SessionToken.Eq(sessionToken)).
		Limit(1).
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0].toEntity(), nil
}

// UpdateSession writes the non-nil fields of patch and returns the stored session,
// or nil when no session has the token.
func (a *Adapter) UpdateSession(ctx context.Context, patch entity.SessionPatch) (*entity.Session, error) {
	db := a.db.WithContext(ctx)

	updates := make(map[string]interface{}, 2)
	if patch.UserID != nil {
		updates[schema.Sessions.UserID.Name] = *patch.UserID
	}
	if patch.Expires != nil {
		updates[schema.Sessions.Expires.Name] = a.dialect.Timestamp(patch.Expires)
	}
	if len(updates) > 0 {
		if err := db.Model(&SessionModel{}).
			Where(schema.Sessions.SessionToken.Eq(patch.SessionToken)).
			Updates(updates).Error; err != nil {
			return nil, err
		}
	}

	var model SessionModel
	if err := db.Where(schema.Sessions.SessionToken.Eq(patch.SessionToken)).Take(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToEntity(), nil
}

// DeleteSession removes a session by token. Deleting a missing session is not an error.
func (a *Adapter) DeleteSession(ctx context.Context, sessionToken string) error {
	return a.db.WithContext(ctx).
		Where(schema.Sessions.SessionToken.Eq(sessionToken)).
		Delete(&SessionModel{}).Error
}
