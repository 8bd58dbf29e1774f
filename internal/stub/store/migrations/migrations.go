// Package migrations embeds the stub store's schema files for
// golang-migrate's iofs source driver.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
