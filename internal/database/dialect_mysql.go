package database

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
)

const (
	// ER_ROW_IS_REFERENCED_2
	mysqlRowIsReferenced = 1451
	// ER_NO_REFERENCED_ROW_2
	mysqlNoReferencedRow = 1452
)

// MySQLDialect implements Dialect for MySQL
type MySQLDialect struct{}

// NewMySQLDialect creates a new MySQL dialect
func NewMySQLDialect() *MySQLDialect {
	return &MySQLDialect{}
}

func (d *MySQLDialect) DriverName() string {
	return "mysql"
}

// DSN forces parseTime so DATE columns scan into time.Time, reports
// matched rather than changed rows from UPDATE, and sets
// foreign_key_checks on every pooled connection.
func (d *MySQLDialect) DSN(config DialectConfig) string {
	var params []string
	if !strings.Contains(config.URL, "parseTime=") {
		params = append(params, "parseTime=true")
	}
	if !strings.Contains(config.URL, "clientFoundRows=") {
		params = append(params, "clientFoundRows=true")
	}
	if !strings.Contains(config.URL, "foreign_key_checks=") {
		params = append(params, "foreign_key_checks=1")
	}
	return appendParams(config.URL, params...)
}

func (d *MySQLDialect) RewriteQuery(query string) string {
	// MySQL uses ? placeholders like SQLite, no rewrite needed
	return query
}

func (d *MySQLDialect) SupportsLastInsertId() bool {
	return true
}

func (d *MySQLDialect) ConfigureConnection(db *sql.DB) error {
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(1 * time.Minute)
	return nil
}

func (d *MySQLDialect) ColumnType(col Column) string {
	switch col.Kind {
	case KindSerial:
		return "INT AUTO_INCREMENT PRIMARY KEY"
	case KindInteger:
		return "INT"
	case KindString:
		return fmt.Sprintf("VARCHAR(%d)", col.Size)
	case KindDate:
		return "DATE"
	case KindTime:
		return "TIME"
	}
	return "TEXT"
}

func (d *MySQLDialect) TableOptions() string {
	return " ENGINE=InnoDB"
}

func (d *MySQLDialect) IsForeignKeyViolation(err error) bool {
	var mysqlErr *mysql.MySQLError
	if !errors.As(err, &mysqlErr) {
		return false
	}
	return mysqlErr.Number == mysqlRowIsReferenced || mysqlErr.Number == mysqlNoReferencedRow
}
