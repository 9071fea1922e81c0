package database

import (
	"context"
	"database/sql"
	"fmt"

	"cp_tracker/internal/platform/config"
)

var postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id              TEXT PRIMARY KEY,
		username        TEXT NOT NULL UNIQUE,
		email           TEXT NOT NULL UNIQUE,
		hashed_password TEXT NOT NULL,
		created_at      TIMESTAMPTZ NOT NULL,
		updated_at      TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS submissions (
		id            TEXT PRIMARY KEY,
		seq           BIGSERIAL,
		name          TEXT NOT NULL,
		date          TEXT NOT NULL,
		solved_status TEXT NOT NULL CHECK (solved_status IN ('yes', 'no')),
		problem_count INTEGER NOT NULL DEFAULT 0,
		problems      JSONB NOT NULL DEFAULT '[]'::jsonb,
		why_not       TEXT NOT NULL DEFAULT '',
		created_at    TIMESTAMPTZ NOT NULL,
		updated_at    TIMESTAMPTZ NOT NULL
	)`,
}

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id              TEXT PRIMARY KEY,
		username        TEXT NOT NULL UNIQUE,
		email           TEXT NOT NULL UNIQUE,
		hashed_password TEXT NOT NULL,
		created_at      DATETIME NOT NULL,
		updated_at      DATETIME NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS submissions (
		id            TEXT PRIMARY KEY,
		name          TEXT NOT NULL,
		date          TEXT NOT NULL,
		solved_status TEXT NOT NULL CHECK (solved_status IN ('yes', 'no')),
		problem_count INTEGER NOT NULL DEFAULT 0,
		problems      TEXT NOT NULL DEFAULT '[]',
		why_not       TEXT NOT NULL DEFAULT '',
		created_at    DATETIME NOT NULL,
		updated_at    DATETIME NOT NULL
	)`,
}

// EnsureSchema creates the users and submissions tables if they are missing.
func EnsureSchema(ctx context.Context, db *sql.DB, driver string) error {
	var stmts []string
	switch driver {
	case config.DriverPostgres:
		stmts = postgresSchema
	case config.DriverSQLite:
		stmts = sqliteSchema
	default:
		return fmt.Errorf("ensure schema: unsupported driver %q", driver)
	}
	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

// Open connects to the configured store and makes sure its tables exist.
func Open(ctx context.Context, cfg *config.Config) (*sql.DB, error) {
	var (
		db  *sql.DB
		err error
	)
	switch cfg.DBDriver {
	case config.DriverSQLite:
		db, err = OpenSQLite(ctx, cfg.SQLitePath)
	default:
		db, err = ConnectPostgres(ctx, cfg.DBConnStr)
	}
	if err != nil {
		return nil, err
	}
	if err := EnsureSchema(ctx, db, cfg.DBDriver); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}
