// Package main implements refdatactl, the CLI for the reference data
// API server.
//
// The server exposes CRUD endpoints for financial reference entities
// (bids, curve points, ratings, rule names, trades, users) over
// PostgreSQL, with JWT bearer authentication and role-based access.
//
// # Quick Start
//
//	# Generate a token signing key
//	export REFDATA_TOKEN_KEY="$(refdatactl token-key generate)"
//
//	# Run database migrations
//	refdatactl db migrate
//
//	# Start the server
//	refdatactl server
//
// # Environment Variables
//
//   - DATABASE_URL: PostgreSQL connection string
//   - REFDATA_TOKEN_KEY: Base64-encoded 256-bit token signing key
//   - REFDATA_AUDIT_ENABLED: Toggle audit logging (default: true)
//   - AUDIT_DATABASE_URL: Optional audit message database
//   - REFDATA_LOG_LEVEL: Log level (debug enables SQL logging)
//   - PORT: Server port (default: 8000)
package main
