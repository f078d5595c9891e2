package postgres_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/aussiebroadwan/hwlend/internal/lending/store"
	"github.com/aussiebroadwan/hwlend/internal/lending/store/drivers/postgres"
	"github.com/aussiebroadwan/hwlend/internal/lending/store/storetest"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	pgUser     = "hwlend"
	pgPassword = "hwlend-test"
	pgDatabase = "hwlend"
)

// startPostgres runs a disposable postgres container and returns its URL.
// The test is skipped when no container runtime is reachable.
func startPostgres(t *testing.T) string {
	t.Helper()
	if testing.Short() || os.Getenv("HWLEND_SKIP_CONTAINERS") != "" {
		t.Skip("container tests disabled")
	}

	ctx := context.Background()
	req := testcontainers.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     pgUser,
			"POSTGRES_PASSWORD": pgPassword,
			"POSTGRES_DB":       pgDatabase,
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		t.Skipf("postgres container unavailable: %v", err)
	}
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432")
	require.NoError(t, err)

	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", pgUser, pgPassword, host, port.Port(), pgDatabase)
}

func TestStore(t *testing.T) {
	url := startPostgres(t)

	// Each subtest gets a clean schema in the shared container.
	storetest.Run(t, func(t *testing.T) store.Store {
		st, err := postgres.NewStore(t.Context(), url)
		require.NoError(t, err)
		t.Cleanup(func() { _ = st.Close() })

		_, err = st.DB().ExecContext(t.Context(), `DROP SCHEMA public CASCADE; CREATE SCHEMA public;`)
		require.NoError(t, err)
		require.NoError(t, st.ApplyMigrations())
		return st
	})
}
