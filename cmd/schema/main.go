// Command schema creates the auth tables on the configured database.
//
// It reads the DB_* variables of the db package plus APP_ENV, SCHEMA_DRY_RUN and
// DB_ENFORCE_UNIQUE. With SCHEMA_DRY_RUN set it prints the DDL instead of running it.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	zlog "github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"auth_adapter/internal/app/di"
	"auth_adapter/internal/feature/auth/schema"
	infradb "auth_adapter/internal/platform/db"
	"auth_adapter/internal/platform/logger"
	infraredis "auth_adapter/internal/platform/redis"
)

type config struct {
	Env           string        `env:"APP_ENV" envDefault:"production"`
	DryRun        bool          `env:"SCHEMA_DRY_RUN"`
	EnforceUnique bool          `env:"DB_ENFORCE_UNIQUE"`
	SlowQuery     time.Duration `env:"DB_SLOW_QUERY" envDefault:"200ms"`
	Timeout       time.Duration `env:"SCHEMA_TIMEOUT" envDefault:"2m"`
}

func main() {
	// .envを読み込む
	envErr := godotenv.Load(".env")

	var cfg config
	if err := env.Parse(&cfg); err != nil {
		fmt.Fprintln(os.Stderr, "invalid environment:", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Env, os.Stderr)
	zlog.Logger = log
	if envErr != nil {
		log.Info().Msg(".env not found; using system environment variables")
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
	defer cancel()

	if err := run(ctx, cfg, log, os.Stdout); err != nil {
		log.Error().Err(err).Msg("schema failed")
		cancel()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config, log logger.Logger, out io.Writer) error {
	dbCfg, err := infradb.LoadConfigFromEnv()
	if err != nil {
		return err
	}
	opts := schema.Options{EnforceUniqueness: cfg.EnforceUnique}

	if cfg.DryRun {
		d, err := schema.ParseDialect(dbCfg.Dialect)
		if err != nil {
			return err
		}
		for _, stmt := range schema.Statements(d, opts) {
			if _, err := fmt.Fprintf(out, "%s;\n", stmt); err != nil {
				return err
			}
		}
		return nil
	}

	// db
	db, err := infradb.Open(dbCfg, &gorm.Config{
		Logger: logger.NewGormLogger(log, logger.GormLevel(cfg.Env), cfg.SlowQuery),
	})
	if err != nil {
		return err
	}
	if sqlDB, err := db.DB(); err == nil {
		defer func() {
			if err := sqlDB.Close(); err != nil {
				log.Error().Err(err).Msg("failed to close database")
			}
		}()
	}

	if err := schema.Create(ctx, db, opts); err != nil {
		return err
	}
	if err := schema.Verify(ctx, db); err != nil {
		return err
	}
	log.Info().Str("dialect", dbCfg.Dialect).Bool("enforce_unique", cfg.EnforceUnique).Msg("tables ready")

	// Redis
	redisCfg, err := infraredis.LoadConfigFromEnv()
	if err != nil {
		return err
	}
	rdb, err := infraredis.NewRedisClient(ctx, redisCfg, log)
	if err != nil {
		log.Warn().Err(err).Msg("redis unavailable; verification tokens stay in the database")
		rdb = nil
	}
	if rdb != nil {
		defer func() {
			if err := rdb.Close(); err != nil {
				log.Error().Err(err).Msg("failed to close redis client")
			}
		}()
	}

	// Read through the adapter once so a broken projection fails here, not at login.
	adapter, err := di.NewAdapter(db, rdb, nil, log)
	if err != nil {
		return err
	}
	if _, err := adapter.GetUserByEmail(ctx, ""); err != nil {
		return fmt.Errorf("adapter readiness check: %w", err)
	}
	if _, err := adapter.GetSessionAndUser(ctx, ""); err != nil {
		return fmt.Errorf("adapter readiness check: %w", err)
	}

	log.Info().Bool("redis", rdb != nil).Msg("auth adapter ready")
	return nil
}
