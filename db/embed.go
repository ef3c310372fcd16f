// Package db carries the goose SQL migrations so cmd/migrate and the
// integration tests apply the same schema without depending on the working
// directory.
package db

import "embed"

//go:embed migrations/*.sql
var Migrations embed.FS
