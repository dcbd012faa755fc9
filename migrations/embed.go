package migrations

import "embed"

// Files contains the golang-migrate SQL files in ascending order by version.
//
//go:embed *.sql
var Files embed.FS
