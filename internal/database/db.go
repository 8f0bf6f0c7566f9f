package database

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/jmoiron/sqlx"

	"peersatpark/internal/config"
)

// DB is the process-wide store handle. It is created once at startup by
// Connect and passed explicitly to everything that needs persistence.
type DB struct {
	queryer
	conn *sqlx.DB
}

// Initialize opens a SQLite database at dbPath
func Initialize(dbPath string) (*DB, error) {
	return Connect(context.Background(), &config.Config{
		DatabaseType: "sqlite",
		DatabasePath: dbPath,
	})
}

// Connect creates and configures the database connection based on config
// (sqlite, postgres or mysql). Failing to reach the store is reported as a
// *ConnectionError.
func Connect(ctx context.Context, cfg *config.Config) (*DB, error) {
	dialect, dialectConfig, err := dialectFor(cfg)
	if err != nil {
		return nil, err
	}

	conn, err := sqlx.Open(dialect.DriverName(), dialect.DSN(dialectConfig))
	if err != nil {
		return nil, &ConnectionError{Driver: dialect.DriverName(), Err: err}
	}

	// Test the connection
	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, &ConnectionError{Driver: dialect.DriverName(), Err: err}
	}

	// Apply dialect-specific configuration
	if err := dialect.ConfigureConnection(conn.DB); err != nil {
		conn.Close()
		return nil, &ConnectionError{Driver: dialect.DriverName(), Err: fmt.Errorf("failed to configure connection: %w", err)}
	}

	return &DB{
		queryer: queryer{
			runner:             conn,
			dialect:            dialect,
			trackModifications: cfg.TrackModifications,
			scope:              "db",
		},
		conn: conn,
	}, nil
}

func dialectFor(cfg *config.Config) (Dialect, DialectConfig, error) {
	switch strings.ToLower(cfg.DatabaseType) {
	case "postgres", "postgresql":
		return NewPostgresDialect(), DialectConfig{URL: cfg.DatabaseURL}, nil
	case "mysql":
		return NewMySQLDialect(), DialectConfig{URL: cfg.DatabaseURL}, nil
	case "sqlite", "sqlite3":
		return NewSQLiteDialect(), DialectConfig{Path: cfg.DatabasePath}, nil
	default:
		return nil, DialectConfig{}, fmt.Errorf("unsupported database type: %s", cfg.DatabaseType)
	}
}

// PingContext verifies the store is still reachable
func (db *DB) PingContext(ctx context.Context) error {
	return db.conn.PingContext(ctx)
}

// Close closes the database connection
func (db *DB) Close() error {
	if err := db.conn.Close(); err != nil {
		return err
	}
	log.Println("Database connection closed")
	return nil
}
