// Package migrations embeds the SQL schema migrations for every supported dialect.
package migrations

import "embed"

// FS holds one directory of goose migrations per dialect.
//
//go:embed sqlite/*.sql postgres/*.sql
var FS embed.FS
