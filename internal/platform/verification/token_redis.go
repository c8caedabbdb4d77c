// Package verification provides a Redis-backed store for single-use verification tokens.
package verification

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"auth_adapter/internal/feature/auth/domain"
	"auth_adapter/internal/feature/auth/domain/entity"
	"auth_adapter/internal/feature/auth/domain/repository"
)

// TokenRedis implements repository.VerificationTokenStore using Redis.
// Tokens expire with their key, so there is nothing to purge.
type TokenRedis struct {
	client *redis.Client
	prefix string
}

var _ repository.VerificationTokenStore = (*TokenRedis)(nil)

// NewTokenRedis creates a new TokenRedis instance.
func NewTokenRedis(client *redis.Client, prefix string) *TokenRedis {
	return &TokenRedis{
		client: client,
		prefix: prefix,
	}
}

// tokenPayload is the JSON stored under a token key.
type tokenPayload struct {
	Identifier string    `json:"identifier"`
	Token      string    `json:"token"`
	Expires    time.Time `json:"expires"`
}

// tokenKey returns the Redis key for a token. The identifier is length-prefixed
// so that separators inside it cannot make two keys collide.
func (r *TokenRedis) tokenKey(key entity.VerificationTokenKey) string {
	return fmt.Sprintf("%s:%d:%s:%s", r.prefix, len(key.Identifier), key.Identifier, key.Token)
}

// Create stores a token until it expires. Storing the same (identifier, token) pair
// twice fails with domain.ErrVerificationTokenExists.
func (r *TokenRedis) Create(ctx context.Context, token entity.VerificationToken) (*entity.VerificationToken, error) {
	ttl := time.Until(token.Expires)
	if ttl <= 0 {
		return nil, domain.ErrVerificationTokenExpired
	}

	stored := entity.VerificationToken{
		Identifier: token.Identifier,
		Token:      token.Token,
		Expires:    token.Expires.UTC(),
	}
	data, err := json.Marshal(tokenPayload(stored))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal verification token: %w", err)
	}

	ok, err := r.client.SetNX(ctx, r.tokenKey(token.Key()), data, ttl).Result()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrVerificationTokenExists
	}
	return &stored, nil
}

// Use atomically removes the token and returns it, or nil when it is gone.
func (r *TokenRedis) Use(ctx context.Context, key entity.VerificationTokenKey) (*entity.VerificationToken, error) {
	data, err := r.client.GetDel(ctx, r.tokenKey(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var payload tokenPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("failed to unmarshal verification token: %w", err)
	}
	token := entity.VerificationToken(payload)
	return &token, nil
}
