package database

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var (
	testDB *PostgresStore
)

// GetTestDB returns the shared Postgres test store.
// Available after TestMain has run and SetupTestDB succeeded.
// Returns nil if Postgres was unreachable.
func GetTestDB() *PostgresStore {
	return testDB
}

// RequireTestDB returns the shared Postgres test store, skipping the test
// when it is unavailable or when running with -short.
func RequireTestDB(t *testing.T) *PostgresStore {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping integration test")
	}
	if testDB == nil {
		t.Skip("postgres test database unavailable")
	}
	return testDB
}

// SetupTestDB creates a Postgres test store, checks it is reachable and
// applies the embedded migrations.
// Should be called once in TestMain, not in individual tests.
func SetupTestDB(dbURL string) (*PostgresStore, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := ConnectPostgres(ctx, dbURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to test database: %w", err)
	}

	if err := db.Ping(ctx); err != nil {
		db.Close(ctx)
		return nil, err
	}

	if err := db.Migrate(ctx); err != nil {
		db.Close(ctx)
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return db, nil
}

// CleanupTestDB truncates all tables for a fresh test state.
// Call this at the start of each integration test.
func CleanupTestDB(t *testing.T, db *PostgresStore) {
	t.Helper()

	ctx := context.Background()
	_, err := db.Pool.Exec(ctx, "TRUNCATE TABLE issues, projects CASCADE")
	require.NoError(t, err)
}

// SetupTestMongo connects to uri, drops the named test database and applies
// the validators. The store is closed when the test finishes.
func SetupTestMongo(t *testing.T, uri, name string) *MongoStore {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	store, err := ConnectMongo(ctx, uri, name)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = store.Close(context.Background())
	})

	require.NoError(t, store.Ping(ctx))
	require.NoError(t, store.db.Drop(ctx))
	require.NoError(t, store.Migrate(ctx))

	return store
}

// TeardownTestDB closes the test database connection.
// Safe to call with nil DB (no-op).
func TeardownTestDB(db *PostgresStore) {
	if db != nil {
		db.Close(context.Background())
	}
}
