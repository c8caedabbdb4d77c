package schema

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Timestamp is the value type of every timestamp column. It is nullable.
//
// On write it encodes itself for the dialect of the statement: unix seconds on SQLite,
// a UTC time value elsewhere. On read it accepts any of the forms drivers return.
type Timestamp struct {
	Time  time.Time
	Valid bool
}

// Ptr returns the time, or nil when the column is NULL.
func (t Timestamp) Ptr() *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time
	return &v
}

// GormDataType implements schema.GormDataTypeInterface.
func (Timestamp) GormDataType() string {
	return "time"
}

// GormValue implements gorm.Valuer.
func (t Timestamp) GormValue(_ context.Context, db *gorm.DB) clause.Expr {
	if !t.Valid {
		return clause.Expr{SQL: "NULL"}
	}
	d := Dialect(db.Dialector.Name())
	if d.StoresTimeAsInteger() {
		return clause.Expr{SQL: "?", Vars: []interface{}{t.Time.Unix()}}
	}
	return clause.Expr{SQL: "?", Vars: []interface{}{d.Normalize(t.Time)}}
}

// Scan implements sql.Scanner.
func (t *Timestamp) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*t = Timestamp{}
		return nil
	case int64:
		*t = Timestamp{Time: time.Unix(v, 0).UTC(), Valid: true}
		return nil
	case time.Time:
		*t = Timestamp{Time: v.UTC(), Valid: true}
		return nil
	case []byte:
		return t.parse(string(v))
	case string:
		return t.parse(v)
	default:
		return fmt.Errorf("schema: cannot scan %T into Timestamp", value)
	}
}

var timestampLayouts = []string{
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05.999999999-07:00",
	time.RFC3339Nano,
}

func (t *Timestamp) parse(s string) error {
	if secs, err := strconv.ParseInt(s, 10, 64); err == nil {
		*t = Timestamp{Time: time.Unix(secs, 0).UTC(), Valid: true}
		return nil
	}
	for _, layout := range timestampLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			*t = Timestamp{Time: parsed.UTC(), Valid: true}
			return nil
		}
	}
	return fmt.Errorf("schema: cannot parse %q as a timestamp", s)
}
