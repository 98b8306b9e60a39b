package store

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/pkg/errors"
)

// dialect holds the statements that differ between backends.
type dialect struct {
	name        string
	createTable string
	insert      string
	recent      string
	cutoff      string // id of the oldest row to keep
	deleteOlder string
}

type SQLStore struct {
	DB      *sql.DB
	dialect dialect
}

func openSQL(ctx context.Context, cfg connConfig) (*SQLStore, error) {
	db, err := sql.Open(cfg.driver, cfg.source)
	if err != nil {
		return nil, errors.Wrapf(err, "opening %s history store", cfg.dialect.name)
	}
	if cfg.dialect.name == "sqlite" {
		// one connection, so a :memory: database is shared by every statement
		db.SetMaxOpenConns(1)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, errors.Wrapf(err, "connecting to %s history store", cfg.dialect.name)
	}
	if _, err := db.ExecContext(ctx, cfg.dialect.createTable); err != nil {
		db.Close()
		return nil, errors.Wrapf(err, "creating %s history table", cfg.dialect.name)
	}

	slog.Debug("history store opened", slog.String("backend", cfg.dialect.name))
	return &SQLStore{DB: db, dialect: cfg.dialect}, nil
}

func (s *SQLStore) Append(ctx context.Context, line string) error {
	if _, err := s.DB.ExecContext(ctx, s.dialect.insert, line); err != nil {
		return errors.Wrap(err, "appending history")
	}
	return nil
}

func (s *SQLStore) Recent(ctx context.Context, n int) ([]string, error) {
	if n <= 0 {
		return []string{}, nil
	}
	rows, err := s.DB.QueryContext(ctx, s.dialect.recent, n)
	if err != nil {
		return nil, errors.Wrap(err, "reading history")
	}
	defer rows.Close()

	var newestFirst []string
	for rows.Next() {
		var line string
		if err := rows.Scan(&line); err != nil {
			return nil, errors.Wrap(err, "reading history")
		}
		newestFirst = append(newestFirst, line)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "reading history")
	}

	lines := make([]string, len(newestFirst))
	for i, line := range newestFirst {
		lines[len(lines)-1-i] = line
	}
	return lines, nil
}

// Trim runs in a transaction so the cutoff and the delete see the same rows.
func (s *SQLStore) Trim(ctx context.Context, keep int) (err error) {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "trimming history")
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	if keep <= 0 {
		if _, err = tx.ExecContext(ctx, "DELETE FROM history"); err != nil {
			return errors.Wrap(err, "trimming history")
		}
		return tx.Commit()
	}

	var cutoff int64
	err = tx.QueryRowContext(ctx, s.dialect.cutoff, keep-1).Scan(&cutoff)
	if errors.Is(err, sql.ErrNoRows) {
		err = nil
		return tx.Commit()
	}
	if err != nil {
		return errors.Wrap(err, "trimming history")
	}
	if _, err = tx.ExecContext(ctx, s.dialect.deleteOlder, cutoff); err != nil {
		return errors.Wrap(err, "trimming history")
	}
	return tx.Commit()
}

func (s *SQLStore) Close() error {
	return s.DB.Close()
}
