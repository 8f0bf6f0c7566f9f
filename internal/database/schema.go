package database

import (
	"context"
	"fmt"
	"log"
	"strings"
)

// ColumnKind is the portable type of a schema column
type ColumnKind int

const (
	KindSerial ColumnKind = iota
	KindInteger
	KindString
	KindDate
	KindTime
)

// Column declares one table column
type Column struct {
	Name    string
	Kind    ColumnKind
	Size    int // VARCHAR width for KindString
	NotNull bool
}

// ForeignKey declares a column referencing another table's primary key
type ForeignKey struct {
	Column    string
	RefTable  string
	RefColumn string
}

// Table declares a table. Columns render in order; foreign keys are
// table-level constraints so MySQL honours them too.
type Table struct {
	Name        string
	Columns     []Column
	ForeignKeys []ForeignKey
}

// Tables lists the schema in dependency order: a table only references
// tables listed before it.
var Tables = []Table{
	{
		Name: "users",
		Columns: []Column{
			{Name: "user_id", Kind: KindSerial},
			{Name: "name", Kind: KindString, Size: 100},
			{Name: "email", Kind: KindString, Size: 64},
			{Name: "location", Kind: KindString, Size: 50},
		},
	},
	{
		Name: "kids",
		Columns: []Column{
			{Name: "kid_id", Kind: KindSerial},
			{Name: "name", Kind: KindString, Size: 30},
			{Name: "date_of_birth", Kind: KindDate},
			{Name: "gender", Kind: KindString, Size: 15},
			{Name: "user_id", Kind: KindInteger, NotNull: true},
		},
		ForeignKeys: []ForeignKey{
			{Column: "user_id", RefTable: "users", RefColumn: "user_id"},
		},
	},
	{
		Name: "checkins",
		Columns: []Column{
			{Name: "checkin_id", Kind: KindSerial},
			{Name: "user_id", Kind: KindInteger, NotNull: true},
			{Name: "checkin_date", Kind: KindDate, NotNull: true},
			{Name: "arrival_time", Kind: KindTime, NotNull: true},
			{Name: "departure_time", Kind: KindTime},
			{Name: "park_id", Kind: KindString, Size: 50, NotNull: true},
		},
		ForeignKeys: []ForeignKey{
			{Column: "user_id", RefTable: "users", RefColumn: "user_id"},
		},
	},
	{
		Name: "kid_checkin",
		Columns: []Column{
			{Name: "kid_checkin_id", Kind: KindSerial},
			{Name: "checkin_id", Kind: KindInteger, NotNull: true},
			{Name: "kid_id", Kind: KindInteger, NotNull: true},
		},
		ForeignKeys: []ForeignKey{
			{Column: "checkin_id", RefTable: "checkins", RefColumn: "checkin_id"},
			{Column: "kid_id", RefTable: "kids", RefColumn: "kid_id"},
		},
	},
}

// CreateSQL renders the CREATE TABLE statement for the dialect
func (t Table) CreateSQL(d Dialect) string {
	lines := make([]string, 0, len(t.Columns)+len(t.ForeignKeys))
	for _, col := range t.Columns {
		line := "    " + col.Name + " " + d.ColumnType(col)
		if col.NotNull {
			line += " NOT NULL"
		}
		lines = append(lines, line)
	}
	for _, fk := range t.ForeignKeys {
		lines = append(lines, fmt.Sprintf("    FOREIGN KEY (%s) REFERENCES %s (%s)", fk.Column, fk.RefTable, fk.RefColumn))
	}

	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (\n%s\n)%s", t.Name, strings.Join(lines, ",\n"), d.TableOptions())
}

// SchemaSQL renders the whole schema as a script
func SchemaSQL(d Dialect) string {
	stmts := make([]string, len(Tables))
	for i, t := range Tables {
		stmts[i] = t.CreateSQL(d) + ";\n"
	}
	return strings.Join(stmts, "\n")
}

// CreateAll creates every table that does not exist yet
func (db *DB) CreateAll(ctx context.Context) error {
	for _, t := range Tables {
		if _, err := db.ExecContext(ctx, t.CreateSQL(db.dialect)); err != nil {
			return fmt.Errorf("failed to create table %s: %w", t.Name, err)
		}
	}
	log.Printf("Schema ready: %d tables", len(Tables))
	return nil
}

// DropAll drops every table, dependents first
func (db *DB) DropAll(ctx context.Context) error {
	for i := len(Tables) - 1; i >= 0; i-- {
		name := Tables[i].Name
		if _, err := db.ExecContext(ctx, "DROP TABLE IF EXISTS "+name); err != nil {
			return fmt.Errorf("failed to drop table %s: %w", name, err)
		}
		log.Printf("Dropped table: %s", name)
	}
	return nil
}

// TableNames returns the schema's table names in dependency order
func TableNames() []string {
	names := make([]string, len(Tables))
	for i, t := range Tables {
		names[i] = t.Name
	}
	return names
}
