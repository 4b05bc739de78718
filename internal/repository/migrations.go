package repository

type migration struct {
	version int
	sql     string
}

// Statements must run unchanged on both Postgres and SQLite.
var migrations = []migration{
	{
		version: 1,
		sql: `
CREATE TABLE IF NOT EXISTS records (
	collection TEXT NOT NULL,
	id         TEXT NOT NULL,
	data       TEXT NOT NULL,
	created_at TEXT NOT NULL,
	updated_at TEXT NOT NULL,
	PRIMARY KEY (collection, id)
)`,
	},
	{
		version: 2,
		sql:     `CREATE INDEX IF NOT EXISTS idx_records_collection_created ON records (collection, created_at)`,
	},
}
