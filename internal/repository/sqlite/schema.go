package sqlite

import "github.com/jmoiron/sqlx"

// schema - DDL основной базы. Уникальный индекс по location_key является
// единственным механизмом контроля параллелизма для семантики
// "первая запись побеждает" при одновременном появлении нового ключа.
const schema = `
CREATE TABLE IF NOT EXISTS taxonomy_entries (
    id           INTEGER PRIMARY KEY AUTOINCREMENT,
    country      TEXT NOT NULL,
    city         TEXT,
    neighborhood TEXT,
    location_key TEXT NOT NULL UNIQUE,
    status       TEXT NOT NULL DEFAULT 'pending' CHECK (status IN ('pending', 'approved')),
    created_at   TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS taxonomy_corrections (
    id              INTEGER PRIMARY KEY AUTOINCREMENT,
    incorrect_value TEXT NOT NULL,
    correct_value   TEXT NOT NULL,
    part_type       TEXT NOT NULL CHECK (part_type IN ('country', 'city', 'neighborhood')),
    created_at      TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    UNIQUE (incorrect_value, part_type)
);

CREATE TABLE IF NOT EXISTS locations (
    id            TEXT PRIMARY KEY,
    name          TEXT NOT NULL,
    category      TEXT NOT NULL CHECK (category IN ('dining', 'accommodation', 'attraction', 'nightlife')),
    address       TEXT,
    lat           REAL NOT NULL,
    lon           REAL NOT NULL,
    description   TEXT,
    instagram_url TEXT,
    website       TEXT,
    location_key  TEXT,
    created_at    TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    updated_at    TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_taxonomy_entries_status ON taxonomy_entries (status);
CREATE INDEX IF NOT EXISTS idx_locations_location_key ON locations (location_key);
CREATE INDEX IF NOT EXISTS idx_locations_category ON locations (category);
`

// ApplySchema применяет DDL; все выражения идемпотентны
func ApplySchema(db *sqlx.DB) error {
	_, err := db.Exec(schema)
	return err
}
