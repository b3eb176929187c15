//go:build integration

// Package dbtest starts a throwaway Postgres for repository integration tests.
package dbtest

import (
	"context"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
)

// NewPool starts a Postgres container with the schema applied and returns a
// pool connected to it. The container is terminated when the test ends.
func NewPool(t *testing.T) *pgxpool.Pool {
	t.Helper()

	ctx := context.Background()

	container, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("condo"),
		tcpostgres.WithUsername("condo"),
		tcpostgres.WithPassword("condo"),
		tcpostgres.WithInitScripts(schemaPath()),
		tcpostgres.BasicWaitStrategies(),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}
	t.Cleanup(func() {
		if err := testcontainers.TerminateContainer(container); err != nil {
			t.Logf("failed to terminate postgres container: %v", err)
		}
	})

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get postgres connection string: %v", err)
	}

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Fatalf("failed to connect to postgres: %v", err)
	}
	t.Cleanup(pool.Close)

	if err := pool.Ping(ctx); err != nil {
		t.Fatalf("failed to ping postgres: %v", err)
	}
	return pool
}

// CreateUser inserts a resident and returns its id.
func CreateUser(t *testing.T, pool *pgxpool.Pool, email string) string {
	t.Helper()

	var id string
	err := pool.QueryRow(context.Background(),
		`INSERT INTO users (email, password_hash, full_name) VALUES ($1, 'x', $1) RETURNING id`,
		email,
	).Scan(&id)
	if err != nil {
		t.Fatalf("failed to create user %s: %v", email, err)
	}
	return id
}

// CreateApartment inserts an apartment owned by ownerID and returns its id.
func CreateApartment(t *testing.T, pool *pgxpool.Pool, ownerID, unit string) string {
	t.Helper()

	var id string
	err := pool.QueryRow(context.Background(),
		`INSERT INTO apartments (unit_number, floor_number, block_name, owner_id, area_sqm)
		 VALUES ($1, 3, 'A', $2, 72.50) RETURNING id`,
		unit, ownerID,
	).Scan(&id)
	if err != nil {
		t.Fatalf("failed to create apartment %s: %v", unit, err)
	}
	return id
}

func schemaPath() string {
	_, file, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(file), "..", "..", "..", "migrations", "001_init.sql")
}
