// Package db holds the schema migrations compiled into the binary, one
// directory per database driver.
package db

import "embed"

//go:embed pg/*.sql sqlite/*.sql
var Migrations embed.FS
