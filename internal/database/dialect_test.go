package database

import (
	"errors"
	"fmt"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"
)

func TestDialectSQLite(t *testing.T) {
	dialect := NewSQLiteDialect()

	t.Run("DriverName", func(t *testing.T) {
		result := dialect.DriverName()
		expected := "sqlite3"
		if result != expected {
			t.Errorf("DriverName() = %v, want %v", result, expected)
		}
	})

	t.Run("SupportsLastInsertId", func(t *testing.T) {
		if !dialect.SupportsLastInsertId() {
			t.Error("SupportsLastInsertId() should return true for SQLite")
		}
	})

	t.Run("DSN", func(t *testing.T) {
		result := dialect.DSN(DialectConfig{Path: "/tmp/parks.db"})
		expected := "/tmp/parks.db?_foreign_keys=on&_journal_mode=WAL&_busy_timeout=5000"
		if result != expected {
			t.Errorf("DSN() = %v, want %v", result, expected)
		}
	})

	t.Run("DSN with existing params", func(t *testing.T) {
		result := dialect.DSN(DialectConfig{Path: "file:parks.db?cache=shared"})
		expected := "file:parks.db?cache=shared&_foreign_keys=on&_journal_mode=WAL&_busy_timeout=5000"
		if result != expected {
			t.Errorf("DSN() = %v, want %v", result, expected)
		}
	})
}

func TestDialectPostgreSQL(t *testing.T) {
	dialect := NewPostgresDialect()

	t.Run("DriverName", func(t *testing.T) {
		result := dialect.DriverName()
		expected := "postgres"
		if result != expected {
			t.Errorf("DriverName() = %v, want %v", result, expected)
		}
	})

	t.Run("SupportsLastInsertId", func(t *testing.T) {
		if dialect.SupportsLastInsertId() {
			t.Error("SupportsLastInsertId() should return false for PostgreSQL")
		}
	})

	t.Run("DSN", func(t *testing.T) {
		result := dialect.DSN(DialectConfig{URL: "postgresql:///parks"})
		if result != "postgresql:///parks" {
			t.Errorf("DSN() = %v", result)
		}
	})
}

func TestDialectMySQL(t *testing.T) {
	dialect := NewMySQLDialect()

	t.Run("DriverName", func(t *testing.T) {
		result := dialect.DriverName()
		expected := "mysql"
		if result != expected {
			t.Errorf("DriverName() = %v, want %v", result, expected)
		}
	})

	t.Run("SupportsLastInsertId", func(t *testing.T) {
		if !dialect.SupportsLastInsertId() {
			t.Error("SupportsLastInsertId() should return true for MySQL")
		}
	})

	t.Run("DSN adds parseTime", func(t *testing.T) {
		result := dialect.DSN(DialectConfig{URL: "parks:secret@tcp(localhost:3306)/parks"})
		expected := "parks:secret@tcp(localhost:3306)/parks?parseTime=true&clientFoundRows=true&foreign_key_checks=1"
		if result != expected {
			t.Errorf("DSN() = %v, want %v", result, expected)
		}
	})

	t.Run("DSN keeps explicit settings", func(t *testing.T) {
		result := dialect.DSN(DialectConfig{URL: "parks@/parks?parseTime=false&foreign_key_checks=0"})
		expected := "parks@/parks?parseTime=false&foreign_key_checks=0&clientFoundRows=true"
		if result != expected {
			t.Errorf("DSN() = %v, want %v", result, expected)
		}
	})
}

func TestRewriteQuery(t *testing.T) {
	tests := []struct {
		name     string
		dialect  Dialect
		query    string
		expected string
	}{
		{
			name:     "SQLite no change",
			dialect:  NewSQLiteDialect(),
			query:    "SELECT * FROM users WHERE user_id = ?",
			expected: "SELECT * FROM users WHERE user_id = ?",
		},
		{
			name:     "PostgreSQL single placeholder",
			dialect:  NewPostgresDialect(),
			query:    "SELECT * FROM users WHERE user_id = ?",
			expected: "SELECT * FROM users WHERE user_id = $1",
		},
		{
			name:     "PostgreSQL multiple placeholders",
			dialect:  NewPostgresDialect(),
			query:    "INSERT INTO users (name, email) VALUES (?, ?)",
			expected: "INSERT INTO users (name, email) VALUES ($1, $2)",
		},
		{
			name:     "MySQL no change",
			dialect:  NewMySQLDialect(),
			query:    "UPDATE users SET name = ?, email = ? WHERE user_id = ?",
			expected: "UPDATE users SET name = ?, email = ? WHERE user_id = ?",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.dialect.RewriteQuery(tt.query)
			if result != tt.expected {
				t.Errorf("RewriteQuery() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestIsForeignKeyViolation(t *testing.T) {
	tests := []struct {
		name    string
		dialect Dialect
		err     error
		want    bool
	}{
		{
			name:    "postgres fk",
			dialect: NewPostgresDialect(),
			err:     &pq.Error{Code: "23503"},
			want:    true,
		},
		{
			name:    "postgres unique",
			dialect: NewPostgresDialect(),
			err:     &pq.Error{Code: "23505"},
			want:    false,
		},
		{
			name:    "sqlite fk wrapped",
			dialect: NewSQLiteDialect(),
			err:     fmt.Errorf("insert: %w", sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintForeignKey}),
			want:    true,
		},
		{
			name:    "sqlite not null",
			dialect: NewSQLiteDialect(),
			err:     sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintNotNull},
			want:    false,
		},
		{
			name:    "mysql parent row referenced",
			dialect: NewMySQLDialect(),
			err:     &mysql.MySQLError{Number: 1451},
			want:    true,
		},
		{
			name:    "mysql child row missing parent",
			dialect: NewMySQLDialect(),
			err:     &mysql.MySQLError{Number: 1452},
			want:    true,
		},
		{
			name:    "mysql duplicate",
			dialect: NewMySQLDialect(),
			err:     &mysql.MySQLError{Number: 1062},
			want:    false,
		},
		{
			name:    "plain error",
			dialect: NewPostgresDialect(),
			err:     errors.New("boom"),
			want:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.dialect.IsForeignKeyViolation(tt.err); got != tt.want {
				t.Errorf("IsForeignKeyViolation() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTranslateError(t *testing.T) {
	dialect := NewPostgresDialect()

	var riErr *ReferentialIntegrityError
	if err := translateError(dialect, &pq.Error{Code: "23503"}); !errors.As(err, &riErr) {
		t.Errorf("translateError() = %v, want ReferentialIntegrityError", err)
	}

	if err := translateError(dialect, nil); err != nil {
		t.Errorf("translateError(nil) = %v", err)
	}
}
