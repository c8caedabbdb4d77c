package redis

import (
	"context"
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// Config is the Redis connection configuration. An empty Addr disables Redis.
type Config struct {
	Addr     string `env:"REDIS_ADDR"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB" envDefault:"0"`
}

// LoadConfigFromEnv reads the Redis configuration from the environment.
func LoadConfigFromEnv() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse redis env: %w", err)
	}
	return cfg, nil
}

// NewRedisClient connects to Redis and checks the connection.
// When cfg.Addr is empty it returns a nil client and a nil error.
func NewRedisClient(ctx context.Context, cfg Config, log zerolog.Logger) (*redis.Client, error) {
	if cfg.Addr == "" {
		log.Info().Msg("Redis disabled, no address configured")
		return nil, nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := ping(ctx, rdb, log); err != nil {
		_ = rdb.Close()
		return nil, err
	}
	return rdb, nil
}

// ping checks the connection.
func ping(ctx context.Context, rdb *redis.Client, log zerolog.Logger) error {
	addr := rdb.Options().Addr
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Error().Err(err).Str("address", addr).Msg("Redis connection failed")
		return fmt.Errorf("redis ping: %w", err)
	}
	log.Info().Str("address", addr).Msg("Redis connection successful")
	return nil
}
