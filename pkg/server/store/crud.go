package store

import "errors"

// ErrNotFound is returned when no record exists for the given id
var ErrNotFound = errors.New("record not found")

// Crud abstracts persistence for one entity type. Implementations
// report a missing record via ErrNotFound rather than raising; the
// endpoints translate that into a 404.
type Crud[E any] interface {
	// Create persists a new record and fills in its assigned id.
	Create(entity *E) error

	// Get retrieves a record by primary key.
	// Returns ErrNotFound if no record matches.
	Get(id uint) (*E, error)

	// List returns up to limit records, all of them when limit <= 0.
	List(limit int) ([]E, error)

	// Update overwrites the full record.
	// Returns ErrNotFound if no record matches its id.
	Update(entity *E) error

	// Delete removes a record by primary key.
	// Returns ErrNotFound if no record matches.
	Delete(id uint) error
}
