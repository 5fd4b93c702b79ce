package storage

import (
	"database/sql"
	"fmt"
)

// InitDB initializes the resource store schema.
// PRE: db is a valid database connection
// POST: The record table exists, WAL mode enabled
func InitDB(db *sql.DB) error {
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	// One table holds every collection. Records are JSON documents; pos
	// preserves insertion order across upserts.
	schema := `
	CREATE TABLE IF NOT EXISTS record (
		pos INTEGER PRIMARY KEY AUTOINCREMENT,
		collection TEXT NOT NULL,
		id TEXT NOT NULL,
		doc TEXT NOT NULL,
		UNIQUE (collection, id)
	);

	CREATE INDEX IF NOT EXISTS idx_record_collection ON record(collection);
	`
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}
