// Package recordstore is a development stand-in for the hosted record
// store API the client consumes, so the system can run end-to-end without
// the hosted service.
package recordstore

import (
	"context"
	"errors"
)

// Collections served by the record store.
const (
	CollectionUser        = "user"
	CollectionBooking     = "booking"
	CollectionTestingSite = "testing-site"
	CollectionCovidTest   = "covid-test"
)

var collections = map[string]bool{
	CollectionUser:        true,
	CollectionBooking:     true,
	CollectionTestingSite: true,
	CollectionCovidTest:   true,
}

// KnownCollection reports whether the store serves this collection.
func KnownCollection(name string) bool {
	return collections[name]
}

// ErrNotFound is returned when no record matches a collection/id pair.
var ErrNotFound = errors.New("record not found")

// Record is a schema-less document. The store does not interpret its
// contents beyond the id field it assigns.
type Record map[string]any

// ID returns the record's assigned id, empty when unassigned.
func (r Record) ID() string {
	id, _ := r["id"].(string)
	return id
}

// Store persists records per collection.
type Store interface {
	List(ctx context.Context, collection string) ([]Record, error)
	Get(ctx context.Context, collection, id string) (Record, error)
	Put(ctx context.Context, collection, id string, record Record) error
	Delete(ctx context.Context, collection, id string) error
}
