package schema

import (
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"auth_adapter/internal/feature/auth/domain"
)

// Dialect names a supported SQL backend. Values match gorm.Dialector.Name().
type Dialect string

const (
	MySQL    Dialect = "mysql"
	Postgres Dialect = "postgres"
	SQLite   Dialect = "sqlite"
)

// Type is the logical type of a column. Each dialect renders it natively.
type Type int

const (
	// TextType is free-form text.
	TextType Type = iota
	// KeyTextType is text that takes part in a key or is intended to be unique.
	// MySQL cannot index an unbounded TEXT column, so it gets a bounded type there.
	KeyTextType
	// IntegerType is a 32-bit integer.
	IntegerType
	// TimestampType is a point in time.
	TimestampType
)

// columnTypes is the per-dialect type mapping. Everything else about the schema is shared.
var columnTypes = map[Dialect]map[Type]string{
	MySQL: {
		TextType:      "text",
		KeyTextType:   "varchar(255)",
		IntegerType:   "int",
		TimestampType: "timestamp(3) NULL",
	},
	Postgres: {
		TextType:      "text",
		KeyTextType:   "text",
		IntegerType:   "integer",
		TimestampType: "timestamp(3)",
	},
	SQLite: {
		TextType:      "text",
		KeyTextType:   "text",
		IntegerType:   "integer",
		TimestampType: "integer",
	},
}

// Dialects lists every supported dialect.
func Dialects() []Dialect {
	return []Dialect{MySQL, Postgres, SQLite}
}

// ParseDialect validates a dialect name.
func ParseDialect(name string) (Dialect, error) {
	d := Dialect(strings.ToLower(strings.TrimSpace(name)))
	if _, ok := columnTypes[d]; !ok {
		supported := make([]string, 0, len(columnTypes))
		for _, known := range Dialects() {
			supported = append(supported, string(known))
		}
		return "", fmt.Errorf("%w: %q (want one of %s)", domain.ErrUnsupportedDialect, name, strings.Join(supported, ", "))
	}
	return d, nil
}

// DialectOf returns the dialect of a live GORM handle.
func DialectOf(db *gorm.DB) (Dialect, error) {
	if db == nil || db.Dialector == nil {
		return "", fmt.Errorf("%w: no dialector", domain.ErrUnsupportedDialect)
	}
	return ParseDialect(db.Dialector.Name())
}

// ColumnType renders a logical type for this dialect.
func (d Dialect) ColumnType(t Type) string {
	return columnTypes[d][t]
}

// Quote quotes an identifier.
func (d Dialect) Quote(name string) string {
	if d == MySQL {
		return "`" + name + "`"
	}
	return `"` + name + `"`
}

// SupportsReturning reports whether DELETE ... RETURNING is available.
func (d Dialect) SupportsReturning() bool {
	return d != MySQL
}

// StoresTimeAsInteger reports whether timestamps are kept as unix seconds.
func (d Dialect) StoresTimeAsInteger() bool {
	return columnTypes[d][TimestampType] == "integer"
}

// Precision is the smallest time step a timestamp column keeps.
func (d Dialect) Precision() time.Duration {
	if d.StoresTimeAsInteger() {
		return time.Second
	}
	return time.Millisecond
}

// Normalize converts t to the value the column will read back: UTC, truncated to Precision.
func (d Dialect) Normalize(t time.Time) time.Time {
	return t.UTC().Truncate(d.Precision())
}

// Timestamp builds a column value from an optional time, normalized for this dialect.
func (d Dialect) Timestamp(t *time.Time) Timestamp {
	if t == nil {
		return Timestamp{}
	}
	return Timestamp{Time: d.Normalize(*t), Valid: true}
}
