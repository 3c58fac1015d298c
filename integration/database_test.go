//go:build database

package integration

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// exerciseBackend runs every storage-backed command against one backend.
func exerciseBackend(t *testing.T, backend, connStr string) {
	env := withSession(t, map[string]string{
		"SPRINTLENS_CACHE_BACKEND":       backend,
		"SPRINTLENS_CACHE_DB_CONNECT":    connStr,
		"SPRINTLENS_ANALYSIS_BACKEND":    backend,
		"SPRINTLENS_ANALYSIS_DB_CONNECT": connStr,
	})

	_, err := runSprintlens(t, env, "cache", "clear")
	require.NoError(t, err)
	_, err = runSprintlens(t, env, "analysis", "clear")
	require.NoError(t, err)

	out, err := runSprintlens(t, env, "analysis", "migrate")
	require.NoError(t, err)
	assert.Contains(t, out, "version 2")

	// Round trip through every schema version on the live server.
	out, err = runSprintlens(t, env, "analysis", "migrate", "--target-version", "0")
	require.NoError(t, err)
	assert.Contains(t, out, "rolled back from version 2 to version 0")
	out, err = runSprintlens(t, env, "analysis", "migrate", "--target-version", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "from version 0 to version 1")
	out, err = runSprintlens(t, env, "analysis", "migrate")
	require.NoError(t, err)
	assert.Contains(t, out, "from version 1 to version 2")

	// Run the cached view twice so the second run is served from the cache.
	for range 2 {
		_, err = runSprintlens(t, env, "cfd", "--days", "14")
		require.NoError(t, err)
	}
	_, err = runSprintlens(t, env, "sprint", "--sprint", "3")
	require.NoError(t, err)
	_, err = runSprintlens(t, env, "velocity")
	require.NoError(t, err)

	out, err = runSprintlens(t, env, "cache", "status")
	require.NoError(t, err)
	assert.Contains(t, out, "Total Entries: 1")

	out, err = runSprintlens(t, env, "analysis", "status")
	require.NoError(t, err)
	assert.Contains(t, out, "Total Runs: 4")

	exportBase := filepath.Join(t.TempDir(), "history")
	_, err = runSprintlens(t, env, "analysis", "export", "--output-file", exportBase)
	require.NoError(t, err)
	assert.FileExists(t, exportBase+".analysis_runs.parquet")
	assert.FileExists(t, exportBase+".metric_values.parquet")
}

// TestSprintlensWithMySQL tests the sprintlens CLI with a MySQL backend.
func TestSprintlensWithMySQL(t *testing.T) {
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "mysql:8",
		ExposedPorts: []string{"3306/tcp"},
		Env: map[string]string{
			"MYSQL_ROOT_PASSWORD": "secret123",
			"MYSQL_DATABASE":      "sprintlens",
		},
		WaitingFor: wait.ForLog("port: 3306  MySQL Community Server").WithStartupTimeout(60 * time.Second),
	}
	mysqlC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	defer func() { _ = mysqlC.Terminate(ctx) }()

	host, err := mysqlC.Host(ctx)
	require.NoError(t, err)
	port, err := mysqlC.MappedPort(ctx, "3306")
	require.NoError(t, err)

	connStr := fmt.Sprintf("root:secret123@tcp(%s:%s)/sprintlens?parseTime=true", host, port.Port())
	exerciseBackend(t, "mysql", connStr)
}

// TestSprintlensWithPostgres tests the sprintlens CLI with a PostgreSQL backend.
func TestSprintlensWithPostgres(t *testing.T) {
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "postgres:18-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_HOST_AUTH_METHOD": "trust",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}
	pgC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	defer func() { _ = pgC.Terminate(ctx) }()

	host, err := pgC.Host(ctx)
	require.NoError(t, err)
	port, err := pgC.MappedPort(ctx, "5432")
	require.NoError(t, err)

	connStr := fmt.Sprintf("host=%s port=%s user=postgres dbname=postgres sslmode=disable", host, port.Port())
	exerciseBackend(t, "postgresql", connStr)
}
