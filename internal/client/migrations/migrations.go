// Package migrations embeds the goose migrations for the client's local
// sqlite database (session metadata and the artifact cache).
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
