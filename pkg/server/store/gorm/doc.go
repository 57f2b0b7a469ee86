// Package gorm provides GORM-backed implementations of the store
// interfaces. Not-found is reported via store.ErrNotFound; any other
// database failure is passed through for the endpoints to treat as an
// unexpected error.
package gorm
