package store

import (
	"github.com/lib/pq"
	"github.com/pkg/errors"
)

var postgresDialect = dialect{
	name: "postgres",
	createTable: `CREATE TABLE IF NOT EXISTS history (
	id         SERIAL PRIMARY KEY,
	line       TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`,
	insert:      "INSERT INTO history (line) VALUES ($1)",
	recent:      "SELECT line FROM history ORDER BY id DESC LIMIT $1",
	cutoff:      "SELECT id FROM history ORDER BY id DESC LIMIT 1 OFFSET $1",
	deleteOlder: "DELETE FROM history WHERE id < $1",
}

// postgresConfig turns a postgres:// URL into a lib/pq connection string.
func postgresConfig(url string) (connConfig, error) {
	source, err := pq.ParseURL(url)
	if err != nil {
		return connConfig{}, errors.Wrap(err, "parsing postgres history dsn")
	}
	return connConfig{driver: "postgres", source: source, dialect: postgresDialect}, nil
}
