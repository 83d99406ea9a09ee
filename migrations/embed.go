package migrations

import "embed"

// Files holds the collection schema as forward-only SQL migrations, applied
// in version order when the store opens.
//
//go:embed *.sql
var Files embed.FS
