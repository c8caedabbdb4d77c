// Package di provides dependency injection factories for creating application components.
package di

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	authadapters "auth_adapter/internal/feature/auth/adapters"
	"auth_adapter/internal/feature/auth/domain/repository"
	"auth_adapter/internal/platform/metrics"
	"auth_adapter/internal/platform/verification"
)

// verificationKeyPrefix namespaces verification token keys in Redis.
const verificationKeyPrefix = "verification"

// NewVerificationTokenStore creates a VerificationTokenStore implementation.
// If Redis is available, it returns a Redis-backed implementation.
// Otherwise, it falls back to the verification_tokens table.
func NewVerificationTokenStore(rdb *redis.Client, db *gorm.DB, log zerolog.Logger) (repository.VerificationTokenStore, error) {
	if rdb != nil {
		return verification.NewTokenRedis(rdb, verificationKeyPrefix), nil
	}
	store, err := authadapters.NewVerificationTokenSQL(db, log)
	if err != nil {
		return nil, err
	}
	return store, nil
}

// NewAdapter assembles the auth adapter on db. rdb may be nil; reg may be nil to skip metrics.
func NewAdapter(db *gorm.DB, rdb *redis.Client, reg prometheus.Registerer, log zerolog.Logger) (repository.Adapter, error) {
	tokens, err := NewVerificationTokenStore(rdb, db, log)
	if err != nil {
		return nil, err
	}

	adapter, err := authadapters.New(db,
		authadapters.WithLogger(log),
		authadapters.WithVerificationTokenStore(tokens),
	)
	if err != nil {
		return nil, err
	}

	if reg == nil {
		return adapter, nil
	}
	return metrics.NewInstrumentedAdapter(adapter, metrics.NewCollector(reg)), nil
}
