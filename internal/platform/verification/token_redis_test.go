package verification

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"auth_adapter/internal/feature/auth/domain"
	"auth_adapter/internal/feature/auth/domain/entity"
)

// setupTestRedis creates a miniredis instance for testing.
func setupTestRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err, "failed to start miniredis")

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	t.Cleanup(func() {
		_ = client.Close()
		mr.Close()
	})

	return client, mr
}

// createTestToken creates a token entity for testing.
func createTestToken(identifier, token string, expiresIn time.Duration) entity.VerificationToken {
	return entity.VerificationToken{
		Identifier: identifier,
		Token:      token,
		Expires:    time.Now().Add(expiresIn),
	}
}

func TestNewTokenRedis(t *testing.T) {
	client, _ := setupTestRedis(t)
	store := NewTokenRedis(client, "verification")

	assert.NotNil(t, store, "store is nil")
	assert.NotNil(t, store.client, "client is nil")
	assert.Equal(t, "verification", store.prefix)
}

func TestTokenRedis_Create(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		token   entity.VerificationToken
		wantErr error
	}{
		{
			name:  "success: create token",
			token: createTestToken("ada@example.com", "tok-1", time.Hour),
		},
		{
			name:    "failure: expired token",
			token:   createTestToken("ada@example.com", "tok-2", -time.Hour),
			wantErr: domain.ErrVerificationTokenExpired,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			client, mr := setupTestRedis(t)
			store := NewTokenRedis(client, "verification")

			got, err := store.Create(context.Background(), tt.token)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, mr.Keys(), "nothing may be stored")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.token.Identifier, got.Identifier)
			assert.True(t, tt.token.Expires.Equal(got.Expires))

			key := store.tokenKey(tt.token.Key())
			assert.True(t, mr.Exists(key), "token key should exist")
			ttl := mr.TTL(key)
			assert.True(t, ttl > 59*time.Minute && ttl <= time.Hour, "unexpected ttl %s", ttl)
		})
	}
}

func TestTokenRedis_CreateDuplicate(t *testing.T) {
	client, _ := setupTestRedis(t)
	store := NewTokenRedis(client, "verification")
	ctx := context.Background()
	token := createTestToken("ada@example.com", "tok", time.Hour)

	_, err := store.Create(ctx, token)
	require.NoError(t, err)

	_, err = store.Create(ctx, token)

	assert.ErrorIs(t, err, domain.ErrVerificationTokenExists)
}

func TestTokenRedis_Use(t *testing.T) {
	client, mr := setupTestRedis(t)
	store := NewTokenRedis(client, "verification")
	ctx := context.Background()
	token := createTestToken("ada@example.com", "tok", time.Hour)
	_, err := store.Create(ctx, token)
	require.NoError(t, err)

	t.Run("first use returns the token", func(t *testing.T) {
		got, err := store.Use(ctx, token.Key())

		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, token.Identifier, got.Identifier)
		assert.Equal(t, token.Token, got.Token)
		assert.True(t, token.Expires.Equal(got.Expires))
		assert.False(t, mr.Exists(store.tokenKey(token.Key())), "token key should be deleted")
	})

	t.Run("second use returns nothing", func(t *testing.T) {
		got, err := store.Use(ctx, token.Key())

		require.NoError(t, err)
		assert.Nil(t, got)
	})
}

func TestTokenRedis_UseExpired(t *testing.T) {
	client, mr := setupTestRedis(t)
	store := NewTokenRedis(client, "verification")
	ctx := context.Background()
	token := createTestToken("ada@example.com", "tok", time.Minute)
	_, err := store.Create(ctx, token)
	require.NoError(t, err)

	mr.FastForward(2 * time.Minute)

	got, err := store.Use(ctx, token.Key())
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestTokenRedis_KeysDoNotCollide(t *testing.T) {
	client, _ := setupTestRedis(t)
	store := NewTokenRedis(client, "verification")
	ctx := context.Background()

	_, err := store.Create(ctx, createTestToken("a:b", "c", time.Hour))
	require.NoError(t, err)
	_, err = store.Create(ctx, createTestToken("a", "b:c", time.Hour))
	require.NoError(t, err, "separator inside the identifier must not clash")

	got, err := store.Use(ctx, entity.VerificationTokenKey{Identifier: "a", Token: "b:c"})
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "a", got.Identifier)
}

func TestTokenRedis_UseConcurrent(t *testing.T) {
	client, _ := setupTestRedis(t)
	store := NewTokenRedis(client, "verification")
	ctx := context.Background()
	token := createTestToken("ada@example.com", "race", time.Hour)
	_, err := store.Create(ctx, token)
	require.NoError(t, err)

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		winners int
	)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := store.Use(ctx, token.Key())
			if err != nil || got == nil {
				return
			}
			mu.Lock()
			winners++
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, winners)
}

func TestTokenRedis_TransportErrors(t *testing.T) {
	client, mock := redismock.NewClientMock()
	store := NewTokenRedis(client, "verification")
	key := entity.VerificationTokenKey{Identifier: "ada@example.com", Token: "tok"}
	down := errors.New("redis down")

	mock.ExpectGetDel(store.tokenKey(key)).SetErr(down)

	got, err := store.Use(context.Background(), key)

	assert.ErrorIs(t, err, down)
	assert.Nil(t, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTokenRedis_CorruptPayload(t *testing.T) {
	client, mr := setupTestRedis(t)
	store := NewTokenRedis(client, "verification")
	key := entity.VerificationTokenKey{Identifier: "ada@example.com", Token: "tok"}
	require.NoError(t, mr.Set(store.tokenKey(key), "not json"))

	got, err := store.Use(context.Background(), key)

	assert.Error(t, err)
	assert.Nil(t, got)
}
