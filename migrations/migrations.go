// Package migrations embeds the versioned schema ledger. New steps are added
// as sequentially numbered up/down pairs and are never edited after release.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
