// Package migrations embeds the per-dialect schema migration files so
// they compile into the binary.
package migrations

import "embed"

//go:embed sqlite mysql
var FS embed.FS
