package adapters

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"auth_adapter/internal/feature/auth/domain/entity"
)

// seedSession creates a session for userID through the adapter.
func seedSession(t *testing.T, a *Adapter, token, userID string, expires time.Time) *entity.Session {
	t.Helper()

	s, err := a.CreateSession(context.Background(), entity.Session{SessionToken: token, UserID: userID, Expires: expires})
	require.NoError(t, err, "failed to seed session")
	return s
}

func TestAdapter_CreateSession(t *testing.T) {
	a, _ := setupTestAdapter(t)
	u := seedUser(t, a, "ada@example.com")
	expires := time.Date(2030, 1, 1, 12, 0, 0, 999_000_000, time.UTC)

	s, err := a.CreateSession(context.Background(), entity.Session{SessionToken: "tok", UserID: u.ID, Expires: expires})

	require.NoError(t, err)
	assert.Equal(t, &entity.Session{
		SessionToken: "tok",
		UserID:       u.ID,
		Expires:      time.Date(2030, 1, 1, 12, 0, 0, 0, time.UTC),
	}, s)
}

func TestAdapter_GetSessionAndUser(t *testing.T) {
	a, _ := setupTestAdapter(t)
	ctx := context.Background()
	verified := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	u, err := a.CreateUser(ctx, entity.User{Name: ptr("Ada"), Email: "ada@example.com", EmailVerified: &verified, Phone: ptr("110")})
	require.NoError(t, err)
	other := seedUser(t, a, "other@example.com")
	expires := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	session := seedSession(t, a, "tok-ada", u.ID, expires)
	seedSession(t, a, "tok-other", other.ID, expires)

	tests := []struct {
		name  string
		token string
		want  *entity.SessionAndUser
	}{
		{
			name:  "session with its full user",
			token: "tok-ada",
			want:  &entity.SessionAndUser{Session: *session, User: *u},
		},
		{name: "unknown token", token: "nope"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := a.GetSessionAndUser(ctx, tt.token)

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAdapter_GetSessionAndUser_UserDeleted(t *testing.T) {
	a, db := setupTestAdapter(t)
	ctx := context.Background()
	u := seedUser(t, a, "gone@example.com")
	seedSession(t, a, "tok", u.ID, time.Now().Add(time.Hour))

	// Remove the user behind the foreign key's back to leave an orphaned session.
	require.NoError(t, db.Exec("PRAGMA foreign_keys = OFF").Error)
	require.NoError(t, db.Exec("DELETE FROM users WHERE id = ?", u.ID).Error)
	require.NoError(t, db.Exec("PRAGMA foreign_keys = ON").Error)

	got, err := a.GetSessionAndUser(ctx, "tok")

	require.NoError(t, err)
	assert.Nil(t, got, "a session without a user is treated as missing")
}

func TestAdapter_UpdateSession(t *testing.T) {
	t.Run("extends the expiry", func(t *testing.T) {
		a, _ := setupTestAdapter(t)
		ctx := context.Background()
		u := seedUser(t, a, "ada@example.com")
		seedSession(t, a, "tok", u.ID, time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC))
		later := time.Date(2031, 6, 1, 0, 0, 0, 0, time.UTC)

		got, err := a.UpdateSession(ctx, entity.SessionPatch{SessionToken: "tok", Expires: &later})

		require.NoError(t, err)
		assert.Equal(t, &entity.Session{SessionToken: "tok", UserID: u.ID, Expires: later}, got)
	})

	t.Run("moves the session to another user", func(t *testing.T) {
		a, _ := setupTestAdapter(t)
		ctx := context.Background()
		from := seedUser(t, a, "from@example.com")
		to := seedUser(t, a, "to@example.com")
		seedSession(t, a, "tok", from.ID, time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC))

		got, err := a.UpdateSession(ctx, entity.SessionPatch{SessionToken: "tok", UserID: &to.ID})

		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, to.ID, got.UserID)
	})

	t.Run("missing session", func(t *testing.T) {
		a, _ := setupTestAdapter(t)
		later := time.Now().Add(time.Hour)

		got, err := a.UpdateSession(context.Background(), entity.SessionPatch{SessionToken: "nope", Expires: &later})

		require.NoError(t, err)
		assert.Nil(t, got)
	})
}

func TestAdapter_DeleteSession(t *testing.T) {
	a, _ := setupTestAdapter(t)
	ctx := context.Background()
	u := seedUser(t, a, "ada@example.com")
	seedSession(t, a, "tok", u.ID, time.Now().Add(time.Hour))

	require.NoError(t, a.DeleteSession(ctx, "tok"))

	got, err := a.GetSessionAndUser(ctx, "tok")
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.NoError(t, a.DeleteSession(ctx, "tok"), "deleting a missing session is a no-op")
}
