// Package migrations embeds the SQL migrations so binaries can apply them
// without the source tree.
package migrations

import "embed"

//go:embed postgres/*.sql
var Postgres embed.FS

const PostgresDir = "postgres"
