// Package db establishes the GORM PostgreSQL connection used by the
// stores and the identity provider. Connection pooling and transaction
// isolation are delegated to the driver; this layer issues one save per
// logical operation.
package db
