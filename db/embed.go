// Package db embeds the SQL migrations so production builds can run
// them without the source tree present.
package db

import "embed"

// Migrations contains the SQL migration files.
//
//go:embed migrations/*.sql
var Migrations embed.FS
