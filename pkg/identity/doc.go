// Package identity holds the authenticated identity of a request and
// the credential/role management subsystem behind a narrow Provider
// contract. Password hashing (bcrypt), role creation and membership
// live here; nothing outside this package sees a password hash.
package identity
