// Package migrations embeds the PostgreSQL schema migrations applied by
// golang-migrate.
package migrations

import "embed"

// FS holds the *.up.sql / *.down.sql migration files
//
//go:embed *.sql
var FS embed.FS
