package testutil

import (
	"context"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
)

// PostgresImage is the image used for integration tests.
const PostgresImage = "postgres:16-alpine"

// PostgresSettings describes how to reach a test database.
type PostgresSettings struct {
	Host     string
	Port     string
	Database string
	Username string
	Password string
	DSN      string
}

// SkipIfNoDocker skips the test if Docker is not available
func SkipIfNoDocker(t *testing.T) {
	t.Helper()

	// Check if Docker binary exists
	if _, err := exec.LookPath("docker"); err != nil {
		t.Skip("Docker not available")
	}

	// Check if Docker daemon is running
	cmd := exec.CommandContext(t.Context(), "docker", "ps")
	if err := cmd.Run(); err != nil {
		t.Skip("Docker daemon not running")
	}
}

// StartPostgresContainer runs a throwaway PostgreSQL server and returns how to
// reach it. The container is removed when the test ends.
func StartPostgresContainer(t *testing.T) PostgresSettings {
	t.Helper()

	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	SkipIfNoDocker(t)

	ctx := context.Background()
	settings := PostgresSettings{
		Database: "app_development",
		Username: "app",
		Password: "s3cret",
	}

	container, err := postgres.Run(ctx, PostgresImage,
		postgres.WithDatabase(settings.Database),
		postgres.WithUsername(settings.Username),
		postgres.WithPassword(settings.Password),
		postgres.BasicWaitStrategies(),
	)
	testcontainers.CleanupContainer(t, container)
	require.NoError(t, err, "Failed to start PostgreSQL container")

	settings.Host, err = container.Host(ctx)
	require.NoError(t, err)

	port, err := container.MappedPort(ctx, "5432/tcp")
	require.NoError(t, err)
	settings.Port = port.Port()

	settings.DSN, err = container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	return settings
}
