package repository

import (
	"context"
	"database/sql"
	"fmt"

	"peersatpark/internal/database"
)

// checkAffected turns an UPDATE/DELETE that touched no rows into ErrNotFound
func checkAffected(result sql.Result, what string, id int64) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows for %s %d: %w", what, id, err)
	}
	if n == 0 {
		return fmt.Errorf("%s %d: %w", what, id, database.ErrNotFound)
	}
	return nil
}

// deleteByID removes one row by primary key
func deleteByID(ctx context.Context, db database.DBTX, table, idColumn, what string, id int64) error {
	result, err := db.ExecContext(ctx, "DELETE FROM "+table+" WHERE "+idColumn+" = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete %s %d: %w", what, id, err)
	}
	return checkAffected(result, what, id)
}
