//go:build integration

package storage

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
)

const postgresImage = "postgres:16-alpine"

var (
	pgOnce sync.Once
	pgDSN  string
	pgErr  error
)

// NewPostgresTestDB returns a migrated connection to a PostgreSQL
// container shared by every test in the run. Tables are truncated on
// each call.
func NewPostgresTestDB(t testing.TB) *DB {
	t.Helper()

	if testing.Short() {
		t.Skip("Skipping integration test in short mode (requires Docker)")
	}

	pgOnce.Do(func() {
		pgDSN, pgErr = startPostgres()
	})
	if pgErr != nil {
		t.Fatalf("setup postgres: %v", pgErr)
	}

	db, err := NewDB("postgres", pgDSN, Options{MaxOpenConns: 10}, zap.NewNop())
	if err != nil {
		t.Fatalf("open postgres: %v", err)
	}
	t.Cleanup(db.Close)

	if _, err := db.GetConnection().Exec(
		`TRUNCATE evaluation_logs, candidate_tracking, candidate_skills, candidate_experience, candidates`); err != nil {
		t.Fatalf("truncate: %v", err)
	}
	return db
}

func startPostgres() (string, error) {
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        postgresImage,
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_DB":       "candidates",
				"POSTGRES_USER":     "cv",
				"POSTGRES_PASSWORD": "test_password",
			},
			WaitingFor: wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		return "", fmt.Errorf("start container: %w", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		return "", fmt.Errorf("container host: %w", err)
	}
	port, err := container.MappedPort(ctx, "5432")
	if err != nil {
		return "", fmt.Errorf("container port: %w", err)
	}

	dsn := fmt.Sprintf("postgres://cv:test_password@%s:%s/candidates?sslmode=disable", host, port.Port())
	if err := Migrate("postgres", dsn, zap.NewNop()); err != nil {
		return "", err
	}
	return dsn, nil
}
