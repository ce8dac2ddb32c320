// Package migrations embeds the SQL schema files for the message audit log.
package migrations

import "embed"

// FS holds the embedded SQL migration files.
//
//go:embed *.sql
var FS embed.FS
