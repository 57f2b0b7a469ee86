package identity

import (
	"errors"
	"strings"

	"github.com/poseidoncap/refdata/pkg/model"
)

// ErrUserExists is returned when the username is already taken
var ErrUserExists = errors.New("username is already taken")

// ErrInvalidCredentials is returned when the username or password is wrong
var ErrInvalidCredentials = errors.New("invalid username or password")

// PolicyError aggregates the messages of a rejected password.
type PolicyError struct {
	Messages []string
}

func (e *PolicyError) Error() string {
	return strings.Join(e.Messages, " ")
}

// Provider is the narrow capability contract over credential and role
// management. The rest of the system treats the implementation as a
// pluggable collaborator and never touches password hashes or role
// membership tables directly.
type Provider interface {
	// CreateUser stores the user with a hashed credential.
	// Returns ErrUserExists for a duplicate username and *PolicyError
	// when the password fails the policy.
	CreateUser(user *model.User, password string) error

	// VerifyCredential checks a username/password pair.
	// Returns ErrInvalidCredentials when either is wrong.
	VerifyCredential(username, password string) (*model.User, error)

	// SetPassword replaces the stored credential for a user.
	SetPassword(username, password string) error

	// EnsureRole creates the named role if it does not exist.
	EnsureRole(name string) error

	// AssignRole replaces the user's role membership with the named role.
	AssignRole(userID uint, roleName string) error

	// RolesOf returns the role names the user is a member of.
	RolesOf(userID uint) ([]string, error)

	// IsMember reports whether the user is a member of the named role.
	IsMember(userID uint, roleName string) (bool, error)
}
