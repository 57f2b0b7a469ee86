// Package store provides storage abstractions for the refdata server.
//
// This package defines interfaces for database operations, allowing the
// server endpoints to be decoupled from the specific database
// implementation. The six entity types share one generic Crud interface
// rather than six hand-copied repositories.
//
// # Available Stores
//
//   - Crud[E]: create/get/list/update/delete for one entity type
//   - UsersStore: Crud[model.User] plus lookup by username
//   - HealthStore: database connectivity checks
//
// # Usage
//
//	bids := gorm.NewCrudStore[model.Bid](db)
//	bid, err := bids.Get(42)
//	if err != nil {
//	    if errors.Is(err, store.ErrNotFound) {
//	        // Handle not found
//	    }
//	}
package store
