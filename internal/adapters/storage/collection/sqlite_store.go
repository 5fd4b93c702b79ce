package collection

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("record not found")

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new collection store.
func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// List retrieves records from a collection in insertion order. Filters match
// top-level scalar fields by string equality; filtering happens after
// decoding because records are schemaless documents.
// POST: Returns matching records, oldest first
func (s *SQLiteStore) List(ctx context.Context, collection string, filters map[string]string) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT doc FROM record WHERE collection = ? ORDER BY pos ASC", collection)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", collection, err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var doc string
		if err := rows.Scan(&doc); err != nil {
			return nil, fmt.Errorf("scan %s record: %w", collection, err)
		}
		rec, err := decodeRecord(doc)
		if err != nil {
			return nil, fmt.Errorf("decode %s record: %w", collection, err)
		}
		if matchesFilters(rec, filters) {
			records = append(records, rec)
		}
	}
	return records, rows.Err()
}

// GetByID retrieves one record.
// PRE: id is non-empty
// POST: Returns the record or ErrNotFound
func (s *SQLiteStore) GetByID(ctx context.Context, collection, id string) (Record, error) {
	var doc string
	err := s.db.QueryRowContext(ctx,
		"SELECT doc FROM record WHERE collection = ? AND id = ?", collection, id).Scan(&doc)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get %s/%s: %w", collection, id, err)
	}
	return decodeRecord(doc)
}

// Save persists a record (insert or update). An updated record keeps its
// original position in the collection.
// PRE: rec has a non-empty id
func (s *SQLiteStore) Save(ctx context.Context, collection string, rec Record) error {
	if rec.ID() == "" {
		return errors.New("record is missing an id")
	}
	doc, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode %s record: %w", collection, err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO record (collection, id, doc) VALUES (?, ?, ?)
		 ON CONFLICT(collection, id) DO UPDATE SET doc = excluded.doc`,
		collection, rec.ID(), string(doc))
	if err != nil {
		return fmt.Errorf("save %s/%s: %w", collection, rec.ID(), err)
	}
	return nil
}

// Delete removes a record.
// POST: Returns true iff a record was removed
func (s *SQLiteStore) Delete(ctx context.Context, collection, id string) (bool, error) {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM record WHERE collection = ? AND id = ?", collection, id)
	if err != nil {
		return false, fmt.Errorf("delete %s/%s: %w", collection, id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func decodeRecord(doc string) (Record, error) {
	var rec Record
	if err := json.Unmarshal([]byte(doc), &rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// matchesFilters compares each filter against the record's top-level field
// rendered as a string, so numeric query values like capacity=10 match.
func matchesFilters(rec Record, filters map[string]string) bool {
	for field, want := range filters {
		got, ok := rec[field]
		if !ok {
			return false
		}
		if stringify(got) != want {
			return false
		}
	}
	return true
}

func stringify(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case float64:
		// JSON numbers decode as float64; render integers without a point.
		if val == float64(int64(val)) {
			return fmt.Sprintf("%d", int64(val))
		}
		return fmt.Sprintf("%v", val)
	case bool:
		if val {
			return "true"
		}
		return "false"
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", val)
	}
}
