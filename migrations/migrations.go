// Package migrations хранит SQL-схему для каждого поддерживаемого драйвера.
package migrations

import "embed"

//go:embed postgres/*.sql sqlite/*.sql
var FS embed.FS
