// Package model defines the database models for the reference-data API.
//
// This package contains GORM models that map to the refdata PostgreSQL
// schema. Each entity is an isolated table with a surrogate integer key;
// there are no cross-table relationships.
//
// # Core Models
//
//   - Bid: bid/ask quotes against an account and book
//   - CurvePoint: a point on a yield curve
//   - Rating: agency credit ratings for an issuer
//   - RuleName: a named business rule with its template and SQL fragments
//   - Trade: a buy/sell record against an account
//   - User: an API user; credentials live in the identity subsystem
//   - Role, UserRole: named roles and role membership
//
// Field-level constraints are expressed as `validate` tags and enforced
// by pkg/validation at input time, never at the storage layer.
package model
