package database

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"log"
	"sort"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// PostgresStore keeps projects as rows and issues as JSONB documents.
type PostgresStore struct {
	Pool *pgxpool.Pool
}

// ConnectPostgres creates the connection pool. Connections are opened lazily.
func ConnectPostgres(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database URL: %w", err)
	}

	config.MaxConns = 25
	config.MinConns = 0
	config.MaxConnLifetime = time.Hour
	config.MaxConnIdleTime = 30 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	return &PostgresStore{Pool: pool}, nil
}

func (db *PostgresStore) Ping(ctx context.Context) error {
	if err := db.Pool.Ping(ctx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}
	log.Println("Database connection established")
	return nil
}

// Migrate runs the embedded SQL migrations in file name order. Every
// migration is idempotent.
func (db *PostgresStore) Migrate(ctx context.Context) error {
	names, err := fs.Glob(migrationFiles, "migrations/*.sql")
	if err != nil {
		return fmt.Errorf("failed to list migrations: %w", err)
	}
	sort.Strings(names)

	for _, name := range names {
		content, err := migrationFiles.ReadFile(name)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", name, err)
		}

		if _, err := db.Pool.Exec(ctx, string(content)); err != nil {
			return fmt.Errorf("failed to execute %s: %w", name, err)
		}
		log.Printf("Migration applied: %s", name)
	}

	return nil
}

func (db *PostgresStore) Close(ctx context.Context) error {
	db.Pool.Close()
	log.Println("Database connection closed")
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

type rowsScanner interface {
	Next() bool
	Scan(dest ...interface{}) error
	Err() error
}
