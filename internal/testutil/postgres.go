// Package testutil provides test helpers for the roster repository tests.
package testutil

import (
	"context"
	"fmt"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/cory-johannsen/reefbattle/internal/config"
	"github.com/cory-johannsen/reefbattle/internal/storage/postgres"
)

const (
	image    = "postgres:16-alpine"
	dbName   = "reef_test"
	dbUser   = "reef"
	dbSecret = "reef"
)

// PostgresContainer is a disposable PostgreSQL server holding one migrated
// roster database.
type PostgresContainer struct {
	container testcontainers.Container
	Pool      *postgres.Pool
	Config    config.DatabaseConfig
}

// startContainer launches the server and reports where it listens.
func startContainer(ctx context.Context) (testcontainers.Container, config.DatabaseConfig, error) {
	c, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        image,
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_DB":       dbName,
				"POSTGRES_USER":     dbUser,
				"POSTGRES_PASSWORD": dbSecret,
			},
			// postgres logs readiness once for the init server and once
			// for the real one.
			WaitingFor: wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(45 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		return nil, config.DatabaseConfig{}, fmt.Errorf("starting %s: %w", image, err)
	}

	host, err := c.Host(ctx)
	if err != nil {
		_ = c.Terminate(ctx)
		return nil, config.DatabaseConfig{}, fmt.Errorf("container host: %w", err)
	}
	port, err := c.MappedPort(ctx, "5432")
	if err != nil {
		_ = c.Terminate(ctx)
		return nil, config.DatabaseConfig{}, fmt.Errorf("container port: %w", err)
	}

	return c, config.DatabaseConfig{
		Host:            host,
		Port:            port.Int(),
		User:            dbUser,
		Password:        dbSecret,
		Name:            dbName,
		SSLMode:         "disable",
		MaxConns:        4,
		MinConns:        1,
		MaxConnLifetime: time.Minute,
	}, nil
}

// NewPostgresContainer starts a server, connects a Pool to it and migrates
// the schema. Everything is torn down when the test finishes.
//
// Precondition: Docker must be available.
func NewPostgresContainer(t *testing.T) *PostgresContainer {
	t.Helper()
	ctx := context.Background()
	began := time.Now()

	c, cfg, err := startContainer(ctx)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Terminate(ctx) })

	pool, err := postgres.NewPool(ctx, cfg)
	require.NoError(t, err, "connecting to %s:%d", cfg.Host, cfg.Port)
	t.Cleanup(pool.Close)

	pc := &PostgresContainer{container: c, Pool: pool, Config: cfg}
	pc.ApplyMigrations(t)
	t.Logf("roster database ready on port %d [%s]", cfg.Port, time.Since(began))
	return pc
}

// MigrationsDir returns the absolute path of the repository's migrations.
func MigrationsDir() string {
	_, file, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(file), "..", "..", "migrations")
}

// ApplyMigrations runs every up migration, the same way cmd/migrate does.
//
// Postcondition: The roster tables exist in the container's database.
func (pc *PostgresContainer) ApplyMigrations(t *testing.T) {
	t.Helper()
	res, err := postgres.Migrate(pc.Config.DSN(), MigrationsDir(), "up", 0)
	require.NoError(t, err, "applying migrations")
	require.False(t, res.Dirty, "migration left the schema dirty")
}

// NewPool returns the pgx pool of a fresh migrated database. The test is
// skipped under -short.
func NewPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping PostgreSQL container test in -short mode")
	}
	return NewPostgresContainer(t).Pool.DB()
}
