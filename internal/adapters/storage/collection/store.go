package collection

import "context"

// Record is one JSON document in a collection. Every record carries a
// string "id" field.
type Record map[string]any

// ID returns the record's id field, or "" if absent.
func (r Record) ID() string {
	id, _ := r["id"].(string)
	return id
}

// Store persists records grouped into named collections, preserving
// insertion order within each collection.
type Store interface {
	List(ctx context.Context, collection string, filters map[string]string) ([]Record, error)
	GetByID(ctx context.Context, collection, id string) (Record, error)
	Save(ctx context.Context, collection string, rec Record) error
	Delete(ctx context.Context, collection, id string) (bool, error)
}
