// Package migrations embeds the goose SQLite schema files.
package migrations

import "embed"

// FS holds the versioned *.sql files.
//
//go:embed *.sql
var FS embed.FS
