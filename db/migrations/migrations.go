package migrations

import "embed"

// Postgres embeds the PostgreSQL migrations. They are applied by
// golang-migrate through the iofs source driver.
//
//go:embed postgres/*.sql
var Postgres embed.FS

// SQLite embeds the SQLite flavour of the same schema.
//
//go:embed sqlite/*.sql
var SQLite embed.FS

// Version is the schema version both drivers migrate to.
const Version = 1
