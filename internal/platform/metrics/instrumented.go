package metrics

import (
	"context"
	"time"

	"auth_adapter/internal/feature/auth/domain/entity"
	"auth_adapter/internal/feature/auth/domain/repository"
)

// InstrumentedAdapter is a decorator that records metrics around a repository.Adapter.
// A nil record with a nil error counts as not_found.
type InstrumentedAdapter struct {
	inner     repository.Adapter
	collector *Collector
}

var _ repository.Adapter = (*InstrumentedAdapter)(nil)

// NewInstrumentedAdapter wraps inner.
func NewInstrumentedAdapter(inner repository.Adapter, collector *Collector) *InstrumentedAdapter {
	return &InstrumentedAdapter{inner: inner, collector: collector}
}

func record[T any](c *Collector, operation string, start time.Time, v *T, err error) (*T, error) {
	outcome := OutcomeOK
	switch {
	case err != nil:
		outcome = OutcomeError
	case v == nil:
		outcome = OutcomeNotFound
	}
	c.Observe(operation, outcome, time.Since(start))
	return v, err
}

func recordErr(c *Collector, operation string, start time.Time, err error) error {
	outcome := OutcomeOK
	if err != nil {
		outcome = OutcomeError
	}
	c.Observe(operation, outcome, time.Since(start))
	return err
}

func (a *InstrumentedAdapter) CreateUser(ctx context.Context, user entity.User) (*entity.User, error) {
	start := time.Now()
	u, err := a.inner.CreateUser(ctx, user)
	return record(a.collector, "create_user", start, u, err)
}

func (a *InstrumentedAdapter) GetUser(ctx context.Context, id string) (*entity.User, error) {
	start := time.Now()
	u, err := a.inner.GetUser(ctx, id)
	return record(a.collector, "get_user", start, u, err)
}

func (a *InstrumentedAdapter) GetUserByEmail(ctx context.Context, email string) (*entity.User, error) {
	start := time.Now()
	u, err := a.inner.GetUserByEmail(ctx, email)
	return record(a.collector, "get_user_by_email", start, u, err)
}

func (a *InstrumentedAdapter) GetUserByAccount(ctx context.Context, key entity.AccountKey) (*entity.User, error) {
	start := time.Now()
	u, err := a.inner.GetUserByAccount(ctx, key)
	return record(a.collector, "get_user_by_account", start, u, err)
}

func (a *InstrumentedAdapter) UpdateUser(ctx context.Context, patch entity.UserPatch) (*entity.User, error) {
	start := time.Now()
	u, err := a.inner.UpdateUser(ctx, patch)
	return record(a.collector, "update_user", start, u, err)
}

func (a *InstrumentedAdapter) DeleteUser(ctx context.Context, id string) error {
	start := time.Now()
	return recordErr(a.collector, "delete_user", start, a.inner.DeleteUser(ctx, id))
}

func (a *InstrumentedAdapter) LinkAccount(ctx context.Context, account entity.Account) (*entity.Account, error) {
	start := time.Now()
	acc, err := a.inner.LinkAccount(ctx, account)
	return record(a.collector, "link_account", start, acc, err)
}

func (a *InstrumentedAdapter) UnlinkAccount(ctx context.Context, key entity.AccountKey) error {
	start := time.Now()
	return recordErr(a.collector, "unlink_account", start, a.inner.UnlinkAccount(ctx, key))
}

func (a *InstrumentedAdapter) CreateSession(ctx context.Context, session entity.Session) (*entity.Session, error) {
	start := time.Now()
	s, err := a.inner.CreateSession(ctx, session)
	return record(a.collector, "create_session", start, s, err)
}

func (a *InstrumentedAdapter) GetSessionAndUser(ctx context.Context, sessionToken string) (*entity.SessionAndUser, error) {
	start := time.Now()
	su, err := a.inner.GetSessionAndUser(ctx, sessionToken)
	return record(a.collector, "get_session_and_user", start, su, err)
}

func (a *InstrumentedAdapter) UpdateSession(ctx context.Context, patch entity.SessionPatch) (*entity.Session, error) {
	start := time.Now()
	s, err := a.inner.UpdateSession(ctx, patch)
	return record(a.collector, "update_session", start, s, err)
}

func (a *InstrumentedAdapter) DeleteSession(ctx context.Context, sessionToken string) error {
	start := time.Now()
	return recordErr(a.collector, "delete_session", start, a.inner.DeleteSession(ctx, sessionToken))
}

func (a *InstrumentedAdapter) CreateVerificationToken(ctx context.Context, token entity.VerificationToken) (*entity.VerificationToken, error) {
	start := time.Now()
	v, err := a.inner.CreateVerificationToken(ctx, token)
	return record(a.collector, "create_verification_token", start, v, err)
}

func (a *InstrumentedAdapter) UseVerificationToken(ctx context.Context, key entity.VerificationTokenKey) (*entity.VerificationToken, error) {
	start := time.Now()
	v, err := a.inner.UseVerificationToken(ctx, key)
	return record(a.collector, "use_verification_token", start, v, err)
}
