// Package store persists REPL input history.
//
// The backend is chosen by the DSN scheme:
//
//	"" or "memory"                   in-process only
//	sqlite://path/to/history.db      github.com/mattn/go-sqlite3
//	mysql://user:pw@tcp(host)/db     github.com/go-sql-driver/mysql
//	postgres://user:pw@host/db       github.com/lib/pq
package store

import (
	"context"
	"strings"
	"sync"

	"github.com/pkg/errors"
)

type Store interface {
	// Append records one input line.
	Append(ctx context.Context, line string) error
	// Recent returns up to n of the newest lines, oldest first.
	Recent(ctx context.Context, n int) ([]string, error)
	// Trim drops everything but the newest keep lines.
	Trim(ctx context.Context, keep int) error
	Close() error
}

func Open(ctx context.Context, dsn string) (Store, error) {
	if dsn == "" || dsn == "memory" {
		return NewMemory(), nil
	}
	cfg, err := parseDSN(dsn)
	if err != nil {
		return nil, err
	}
	s, err := openSQL(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// connConfig is what a DSN resolves to before anything is opened.
type connConfig struct {
	driver  string
	source  string
	dialect dialect
}

func parseDSN(dsn string) (connConfig, error) {
	scheme, rest, ok := strings.Cut(dsn, "://")
	if !ok {
		return connConfig{}, errors.Errorf("history dsn %q has no scheme", dsn)
	}
	switch scheme {
	case "sqlite", "sqlite3":
		return sqliteConfig(rest)
	case "mysql":
		return mysqlConfig(rest)
	case "postgres", "postgresql":
		return postgresConfig(dsn)
	default:
		return connConfig{}, errors.Errorf("unsupported history backend %q", scheme)
	}
}

// Memory keeps history for the lifetime of the process.
type Memory struct {
	mu    sync.Mutex
	lines []string
}

func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) Append(_ context.Context, line string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lines = append(m.lines, line)
	return nil
}

func (m *Memory) Recent(_ context.Context, n int) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	start := len(m.lines) - n
	if start < 0 {
		start = 0
	}
	return append([]string(nil), m.lines[start:]...), nil
}

func (m *Memory) Trim(_ context.Context, keep int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if keep < len(m.lines) {
		m.lines = append([]string(nil), m.lines[len(m.lines)-keep:]...)
	}
	return nil
}

func (m *Memory) Close() error { return nil }
