// Package migrations embeds the SQL schema for the consultation audit trail.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
