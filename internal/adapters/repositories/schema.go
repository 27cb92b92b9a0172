package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"stop-viewer-service/internal/platform/db"
)

// Initialize the kv_store and stops tables.
func InitSchema(conn *sql.DB, dialect db.Dialect) error {
	if conn == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := conn.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	timestamp := "TEXT"
	if dialect == db.DialectPostgres {
		timestamp = "TIMESTAMPTZ"
	}

	createKVStoreQuery := fmt.Sprintf(`
	CREATE TABLE IF NOT EXISTS kv_store (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		updated_at %s NOT NULL
	);
	`, timestamp)

	// seq preserves catalog order; stop_id may be NULL for stops without an id.
	createStopsQuery := `
	CREATE TABLE IF NOT EXISTS stops (
		seq INTEGER PRIMARY KEY,
		stop_id TEXT,
		name TEXT NOT NULL,
		lat DOUBLE PRECISION,
		lng DOUBLE PRECISION,
		address TEXT NOT NULL,
		description TEXT NOT NULL,
		tags TEXT NOT NULL
	);
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_stops_stop_id
    ON stops(stop_id);
	`

	statements := []string{
		createKVStoreQuery,
		createStopsQuery,
		createIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}
