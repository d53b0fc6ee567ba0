// AngelaMos | 2026
// migrations.go

// Package migrations embeds the SQL migration files consumed by goose.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
