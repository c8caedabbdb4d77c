// Package logger builds the zerolog loggers used across the module.
package logger

import (
	"io"
	"os"

	"github.com/rs/zerolog"
	gormlogger "gorm.io/gorm/logger"
)

// Logger is the logger type passed around the module.
type Logger = zerolog.Logger

// EnvLocal is the APP_ENV value of a developer machine.
const EnvLocal = "local"

// New returns a JSON logger writing to w, or to stdout when w is nil.
// The local environment gets human-readable output and debug level.
func New(env string, w io.Writer) Logger {
	if w == nil {
		w = os.Stdout
	}
	level := zerolog.InfoLevel
	if env == EnvLocal {
		w = zerolog.ConsoleWriter{Out: w}
		level = zerolog.DebugLevel
	}
	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}

// GormLevel maps an environment to the GORM log level: every statement locally, warnings elsewhere.
func GormLevel(env string) gormlogger.LogLevel {
	if env == EnvLocal {
		return gormlogger.Info
	}
	return gormlogger.Warn
}
