// Package db opens the GORM handle the auth adapter runs on.
package db

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"
	gmysql "gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	_ "modernc.org/sqlite"

	"auth_adapter/internal/feature/auth/schema"
)

// Alternate database/sql drivers selectable with DB_DRIVER.
const (
	// DriverPQ runs PostgreSQL on lib/pq instead of pgx.
	DriverPQ = "pq"
	// DriverModernc runs SQLite on the pure-Go modernc driver instead of mattn/go-sqlite3.
	DriverModernc = "modernc"
)

// retryInterval is the pause between connection attempts.
const retryInterval = 3 * time.Second

// Config is the database connection configuration.
type Config struct {
	Dialect      string `env:"DB_DIALECT" envDefault:"mysql"`
	Driver       string `env:"DB_DRIVER"`
	User         string `env:"DB_USER"`
	Password     string `env:"DB_PASSWORD"`
	Name         string `env:"DB_NAME"`
	Host         string `env:"DB_HOST" envDefault:"localhost"`
	Port         string `env:"DB_PORT"`
	InstanceName string `env:"INSTANCE_CONNECTION_NAME"`
	SSLMode      string `env:"DB_SSLMODE" envDefault:"disable"`
	SQLitePath   string `env:"DB_SQLITE_PATH" envDefault:"auth.db"`

	ConnectTimeout time.Duration `env:"DB_CONNECT_TIMEOUT" envDefault:"60s"`
}

// LoadConfigFromEnv reads the database configuration from the environment.
func LoadConfigFromEnv() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse db env: %w", err)
	}
	d, err := schema.ParseDialect(cfg.Dialect)
	if err != nil {
		return Config{}, err
	}
	cfg.Dialect = string(d)
	return cfg, nil
}

// BuildDSN renders the connection string for cfg. A Cloud SQL instance name,
// when set, takes precedence over host and port.
func BuildDSN(cfg Config) string {
	switch schema.Dialect(cfg.Dialect) {
	case schema.Postgres:
		host, port := cfg.Host, portOr(cfg.Port, "5432")
		if cfg.InstanceName != "" {
			return fmt.Sprintf("host=/cloudsql/%s user=%s password=%s dbname=%s sslmode=%s TimeZone=UTC",
				cfg.InstanceName, cfg.User, cfg.Password, cfg.Name, cfg.SSLMode)
		}
		return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s TimeZone=UTC",
			host, port, cfg.User, cfg.Password, cfg.Name, cfg.SSLMode)

	case schema.SQLite:
		pragma := "_foreign_keys=on"
		if cfg.Driver == DriverModernc {
			pragma = "_pragma=foreign_keys(1)"
		}
		sep := "?"
		if strings.Contains(cfg.SQLitePath, "?") {
			sep = "&"
		}
		return cfg.SQLitePath + sep + pragma

	default:
		if cfg.InstanceName != "" {
			return fmt.Sprintf("%s:%s@unix(/cloudsql/%s)/%s?charset=utf8mb4&parseTime=true&loc=UTC",
				cfg.User, cfg.Password, cfg.InstanceName, cfg.Name)
		}
		return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=true&loc=UTC",
			cfg.User, cfg.Password, cfg.Host, portOr(cfg.Port, "3306"), cfg.Name)
	}
}

func portOr(port, fallback string) string {
	if port == "" {
		return fallback
	}
	return port
}

// Dialector returns the GORM dialector for cfg.
func Dialector(cfg Config) (gorm.Dialector, error) {
	return dialectorFor(cfg, BuildDSN(cfg))
}

func dialectorFor(cfg Config, dsn string) (gorm.Dialector, error) {
	d, err := schema.ParseDialect(cfg.Dialect)
	if err != nil {
		return nil, err
	}

	switch {
	case d == schema.MySQL && cfg.Driver == "":
		return gmysql.Open(dsn), nil
	case d == schema.Postgres && cfg.Driver == "":
		return postgres.Open(dsn), nil
	case d == schema.Postgres && cfg.Driver == DriverPQ:
		return postgres.New(postgres.Config{DriverName: "postgres", DSN: dsn}), nil
	case d == schema.SQLite && cfg.Driver == "":
		return sqlite.Open(dsn), nil
	case d == schema.SQLite && cfg.Driver == DriverModernc:
		return sqlite.New(sqlite.Config{DriverName: "sqlite", DSN: dsn}), nil
	default:
		return nil, fmt.Errorf("driver %q is not available for %s", cfg.Driver, d)
	}
}

// ConnectWithRetry calls opener until it succeeds or timeout has elapsed,
// pausing retryInterval between attempts.
func ConnectWithRetry(dsn string, timeout time.Duration, opener func(string) (*gorm.DB, error)) (*gorm.DB, error) {
	deadline := time.Now().Add(timeout)
	for {
		db, err := opener(dsn)
		if err == nil {
			return db, nil
		}
		if time.Now().Add(retryInterval).After(deadline) {
			return nil, fmt.Errorf("db connect failed after %s: %w", timeout, err)
		}
		log.Warn().Err(err).Dur("retry_in", retryInterval).Msg("db connect failed, retrying")
		time.Sleep(retryInterval)
	}
}

// Open connects to the database described by cfg, retrying until cfg.ConnectTimeout.
func Open(cfg Config, gormCfg *gorm.Config) (*gorm.DB, error) {
	if gormCfg == nil {
		gormCfg = &gorm.Config{}
	}
	// A bad dialect or driver will not fix itself; fail before retrying.
	if _, err := Dialector(cfg); err != nil {
		return nil, err
	}
	return ConnectWithRetry(BuildDSN(cfg), cfg.ConnectTimeout, func(dsn string) (*gorm.DB, error) {
		dialector, err := dialectorFor(cfg, dsn)
		if err != nil {
			return nil, err
		}
		return gorm.Open(dialector, gormCfg)
	})
}
