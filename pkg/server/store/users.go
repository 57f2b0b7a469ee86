package store

import "github.com/poseidoncap/refdata/pkg/model"

// UsersStore abstracts user record storage beyond the plain CRUD
// operations. Credentials and role membership live behind the identity
// provider, not here.
type UsersStore interface {
	Crud[model.User]

	// GetByUsername retrieves a user by login name.
	// Returns ErrNotFound if no user matches.
	GetByUsername(username string) (*model.User, error)
}
