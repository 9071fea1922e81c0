package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	"go.uber.org/zap"
)

// ConnectPostgres opens a pooled PostgreSQL handle through the pgx driver and
// verifies it with a ping.
func ConnectPostgres(ctx context.Context, connStr string) (*sql.DB, error) {
	pgCfg, err := pgx.ParseConfig(connStr)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}

	db := stdlib.OpenDB(*pgCfg)
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	zap.L().Info("connected to PostgreSQL", zap.String("host", pgCfg.Host), zap.String("database", pgCfg.Database))
	return db, nil
}
