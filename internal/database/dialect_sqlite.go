package database

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mattn/go-sqlite3"
)

// SQLiteDialect implements Dialect for SQLite
type SQLiteDialect struct{}

// NewSQLiteDialect creates a new SQLite dialect
func NewSQLiteDialect() *SQLiteDialect {
	return &SQLiteDialect{}
}

func (d *SQLiteDialect) DriverName() string {
	return "sqlite3"
}

// DSN enables foreign keys through the DSN so every pooled connection
// enforces them, not only the one a PRAGMA happened to run on.
func (d *SQLiteDialect) DSN(config DialectConfig) string {
	return appendParams(config.Path, "_foreign_keys=on", "_journal_mode=WAL", "_busy_timeout=5000")
}

func (d *SQLiteDialect) RewriteQuery(query string) string {
	// SQLite uses ? placeholders, no rewrite needed
	return query
}

func (d *SQLiteDialect) SupportsLastInsertId() bool {
	return true
}

func (d *SQLiteDialect) ConfigureConnection(db *sql.DB) error {
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(1 * time.Minute)
	return nil
}

func (d *SQLiteDialect) ColumnType(col Column) string {
	switch col.Kind {
	case KindSerial:
		return "INTEGER PRIMARY KEY AUTOINCREMENT"
	case KindInteger:
		return "INTEGER"
	case KindString:
		return fmt.Sprintf("VARCHAR(%d)", col.Size)
	case KindDate:
		return "DATE"
	case KindTime:
		return "TIME"
	}
	return "TEXT"
}

func (d *SQLiteDialect) TableOptions() string {
	return ""
}

func (d *SQLiteDialect) IsForeignKeyViolation(err error) bool {
	var sqliteErr sqlite3.Error
	return errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintForeignKey
}
