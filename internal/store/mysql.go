package store

import (
	"github.com/go-sql-driver/mysql"
	"github.com/pkg/errors"
)

var mysqlDialect = dialect{
	name: "mysql",
	createTable: `CREATE TABLE IF NOT EXISTS history (
	id         BIGINT NOT NULL AUTO_INCREMENT PRIMARY KEY,
	line       TEXT NOT NULL,
	created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
)`,
	insert:      "INSERT INTO history (line) VALUES (?)",
	recent:      "SELECT line FROM history ORDER BY id DESC LIMIT ?",
	cutoff:      "SELECT id FROM history ORDER BY id DESC LIMIT 1 OFFSET ?",
	deleteOlder: "DELETE FROM history WHERE id < ?",
}

// mysqlConfig validates a go-sql-driver DSN such as user:pw@tcp(host:3306)/db.
func mysqlConfig(dsn string) (connConfig, error) {
	cfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		return connConfig{}, errors.Wrap(err, "parsing mysql history dsn")
	}
	if cfg.DBName == "" {
		return connConfig{}, errors.New("mysql history dsn needs a database name")
	}
	cfg.ParseTime = true
	return connConfig{driver: "mysql", source: cfg.FormatDSN(), dialect: mysqlDialect}, nil
}
