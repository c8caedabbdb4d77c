package schema

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"auth_adapter/internal/feature/auth/domain"
)

// Options tunes the rendered DDL.
type Options struct {
	// EnforceUniqueness adds UNIQUE constraints on users.email, sessions.session_token
	// and verification_tokens.token. Off by default: existing deployments may hold duplicates.
	EnforceUniqueness bool
}

// CreateTableSQL renders an idempotent CREATE TABLE statement for t.
func CreateTableSQL(d Dialect, t Table, opts Options) string {
	defs := make([]string, 0, len(t.Columns)+len(t.ForeignKeys)+1)
	for _, c := range t.Columns {
		def := d.Quote(c.Name) + " " + d.ColumnType(c.Type)
		if c.NotNull {
			def += " NOT NULL"
		}
		defs = append(defs, def)
	}

	if len(t.PrimaryKey) > 0 {
		defs = append(defs, "PRIMARY KEY ("+quoteColumns(d, t.PrimaryKey...)+")")
	}

	for _, fk := range t.ForeignKeys {
		name := fmt.Sprintf("%s_%s_%s_%s_fk", t.Name, fk.Column.Name, fk.References.Table, fk.References.Name)
		defs = append(defs, fmt.Sprintf("CONSTRAINT %s FOREIGN KEY (%s) REFERENCES %s (%s) ON DELETE %s",
			d.Quote(name),
			quoteColumns(d, fk.Column),
			d.Quote(fk.References.Table),
			quoteColumns(d, fk.References),
			fk.OnDelete,
		))
	}

	if opts.EnforceUniqueness {
		for _, c := range t.Columns {
			if !c.IntendedUnique {
				continue
			}
			name := fmt.Sprintf("%s_%s_unique", t.Name, c.Name)
			defs = append(defs, fmt.Sprintf("CONSTRAINT %s UNIQUE (%s)", d.Quote(name), quoteColumns(d, c)))
		}
	}

	var b strings.Builder
	b.WriteString("CREATE TABLE IF NOT EXISTS ")
	b.WriteString(d.Quote(t.Name))
	b.WriteString(" (\n\t")
	b.WriteString(strings.Join(defs, ",\n\t"))
	b.WriteString("\n)")
	return b.String()
}

// Statements renders the DDL for every table in dependency order.
func Statements(d Dialect, opts Options) []string {
	tables := Tables()
	stmts := make([]string, len(tables))
	for i, t := range tables {
		stmts[i] = CreateTableSQL(d, t, opts)
	}
	return stmts
}

// Create creates any missing table on db. It is not a migration tool:
// tables that already exist are left as they are.
func Create(ctx context.Context, db *gorm.DB, opts Options) error {
	d, err := DialectOf(db)
	if err != nil {
		return err
	}
	for _, stmt := range Statements(d, opts) {
		if err := db.WithContext(ctx).Exec(stmt).Error; err != nil {
			return fmt.Errorf("failed to create table: %w", err)
		}
	}
	return nil
}

// Verify checks that every table and column exists on db. Create leaves existing
// tables alone, so a table created by an older tool may still miss columns.
func Verify(ctx context.Context, db *gorm.DB) error {
	m := db.WithContext(ctx).Migrator()

	var missing []string
	for _, t := range Tables() {
		if !m.HasTable(t.Name) {
			missing = append(missing, t.Name)
			continue
		}
		for _, name := range t.ColumnNames() {
			if !m.HasColumn(t.Name, name) {
				missing = append(missing, t.Name+"."+name)
			}
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", domain.ErrSchemaMismatch, strings.Join(missing, ", "))
	}
	return nil
}

func quoteColumns(d Dialect, cols ...Column) string {
	quoted := make([]string, len(cols))
	for i, c := range cols {
		quoted[i] = d.Quote(c.Name)
	}
	return strings.Join(quoted, ", ")
}
