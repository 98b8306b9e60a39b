package store

import (
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
)

var sqliteDialect = dialect{
	name: "sqlite",
	createTable: `CREATE TABLE IF NOT EXISTS history (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	line       TEXT NOT NULL,
	created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
)`,
	insert:      "INSERT INTO history (line) VALUES (?)",
	recent:      "SELECT line FROM history ORDER BY id DESC LIMIT ?",
	cutoff:      "SELECT id FROM history ORDER BY id DESC LIMIT 1 OFFSET ?",
	deleteOlder: "DELETE FROM history WHERE id < ?",
}

// sqliteConfig creates the parent directory of a file database.
func sqliteConfig(path string) (connConfig, error) {
	if path == "" {
		return connConfig{}, errors.New("sqlite history dsn needs a path")
	}
	if path != ":memory:" {
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return connConfig{}, errors.Wrapf(err, "creating history directory %s", dir)
			}
		}
	}
	return connConfig{driver: "sqlite3", source: path, dialect: sqliteDialect}, nil
}
