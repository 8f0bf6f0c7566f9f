package database

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// DBTX defines the database operations needed by repositories. It is
// satisfied by *DB, *Session and *Tx.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	InsertReturningID(ctx context.Context, query, idColumn string, args ...interface{}) (int64, error)
	Dialect() Dialect
}

// runner is the subset of *sqlx.DB, *sqlx.Conn and *sqlx.Tx used here
type runner interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	QueryRowxContext(ctx context.Context, query string, args ...interface{}) *sqlx.Row
}

// queryer rewrites placeholders for the dialect and translates driver errors
type queryer struct {
	runner             runner
	dialect            Dialect
	trackModifications bool
	scope              string
}

// Dialect returns the database dialect
func (q queryer) Dialect() Dialect {
	return q.dialect
}

// ExecContext executes a query that doesn't return rows
func (q queryer) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	query = q.dialect.RewriteQuery(query)
	q.track(query, args)

	result, err := q.runner.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, translateError(q.dialect, err)
	}
	return result, nil
}

// GetContext scans a single row into dest; no row yields ErrNotFound
func (q queryer) GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	err := q.runner.GetContext(ctx, dest, q.dialect.RewriteQuery(query), args...)
	return translateError(q.dialect, err)
}

// SelectContext scans all rows into the slice dest
func (q queryer) SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	err := q.runner.SelectContext(ctx, dest, q.dialect.RewriteQuery(query), args...)
	return translateError(q.dialect, err)
}

// InsertReturningID executes an INSERT and returns the new row's ID.
// PostgreSQL has no LastInsertId, so the query gets a RETURNING clause
// for idColumn instead.
func (q queryer) InsertReturningID(ctx context.Context, query, idColumn string, args ...interface{}) (int64, error) {
	query = q.dialect.RewriteQuery(query)

	if q.dialect.SupportsLastInsertId() {
		q.track(query, args)
		result, err := q.runner.ExecContext(ctx, query, args...)
		if err != nil {
			return 0, translateError(q.dialect, err)
		}
		return result.LastInsertId()
	}

	query = strings.TrimSuffix(strings.TrimSpace(query), ";")
	query += " RETURNING " + idColumn
	q.track(query, args)

	var id int64
	if err := q.runner.QueryRowxContext(ctx, query, args...).Scan(&id); err != nil {
		return 0, translateError(q.dialect, err)
	}
	return id, nil
}

func (q queryer) track(query string, args []interface{}) {
	if !q.trackModifications {
		return
	}
	log.Printf("[%s] %s %v", q.scope, strings.Join(strings.Fields(query), " "), args)
}

// Tx wraps sqlx.Tx with dialect-aware methods
type Tx struct {
	queryer
	tx *sqlx.Tx
}

// Commit commits the transaction
func (tx *Tx) Commit() error {
	return tx.tx.Commit()
}

// Rollback aborts the transaction
func (tx *Tx) Rollback() error {
	return tx.tx.Rollback()
}

// BeginTx starts a new transaction on the pool
func (db *DB) BeginTx(ctx context.Context) (*Tx, error) {
	return beginTx(ctx, db.conn.BeginTxx, db.queryer)
}

// WithTx runs fn in a transaction, committing when fn returns nil and
// rolling back otherwise (including on panic).
func (db *DB) WithTx(ctx context.Context, fn func(*Tx) error) error {
	return runTx(ctx, db.conn.BeginTxx, db.queryer, fn)
}

// Session is a request-scoped handle holding one dedicated connection
// from the pool until Close.
type Session struct {
	queryer
	ID     string
	conn   *sqlx.Conn
	closed bool
}

// Session acquires a dedicated connection. Callers must Close it; prefer
// WithSession, which guarantees release.
func (db *DB) Session(ctx context.Context) (*Session, error) {
	conn, err := db.conn.Connx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire session: %w", err)
	}

	id := uuid.NewString()
	return &Session{
		queryer: queryer{
			runner:             conn,
			dialect:            db.dialect,
			trackModifications: db.trackModifications,
			scope:              "session " + id,
		},
		ID:   id,
		conn: conn,
	}, nil
}

// WithSession acquires a session, runs fn and releases the session on
// every exit path.
func (db *DB) WithSession(ctx context.Context, fn func(*Session) error) (err error) {
	session, err := db.Session(ctx)
	if err != nil {
		return err
	}

	defer func() {
		if closeErr := session.Close(); closeErr != nil {
			log.Printf("Error releasing session %s: %v", session.ID, closeErr)
			if err == nil {
				err = fmt.Errorf("failed to release session: %w", closeErr)
			}
		}
	}()

	return fn(session)
}

// Close returns the connection to the pool. It is safe to call twice.
func (s *Session) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	return s.conn.Close()
}

// WithTx runs fn in a transaction on the session's connection
func (s *Session) WithTx(ctx context.Context, fn func(*Tx) error) error {
	return runTx(ctx, s.conn.BeginTxx, s.queryer, fn)
}

type beginFunc func(ctx context.Context, opts *sql.TxOptions) (*sqlx.Tx, error)

func beginTx(ctx context.Context, begin beginFunc, q queryer) (*Tx, error) {
	tx, err := begin(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	q.runner = tx
	return &Tx{queryer: q, tx: tx}, nil
}

func runTx(ctx context.Context, begin beginFunc, q queryer, fn func(*Tx) error) (err error) {
	tx, err := beginTx(ctx, begin, q)
	if err != nil {
		return err
	}

	committed := false
	defer func() {
		if committed {
			return
		}
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if rbErr := tx.Rollback(); rbErr != nil {
			log.Printf("Error rolling back transaction: %v", rbErr)
		}
	}()

	if err := fn(tx); err != nil {
		return err
	}

	committed = true
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
