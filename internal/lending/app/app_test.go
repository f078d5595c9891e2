package app

import (
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/aussiebroadwan/hwlend/internal/lending/domain"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) Config {
	t.Setenv("LOG_LEVEL", "error")
	cfg := LoadConfig()
	dir := t.TempDir()
	cfg.DatabaseFile = filepath.Join(dir, "hwlend.db")
	cfg.PepperFile = filepath.Join(dir, "pepper")
	cfg.SigningKeyFile = filepath.Join(dir, "keys", "signing.pem")
	return cfg
}

func TestNewWiresServices(t *testing.T) {
	cfg := testConfig(t)

	app, err := New(t.Context(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Close() })

	require.Nil(t, app.Archive)

	u, err := app.Accounts.CreateUser(t.Context(), "root", "root@example.com", "root-password", domain.RoleAdmin)
	require.NoError(t, err)

	session, err := app.Sessions.Issue(t.Context(), u)
	require.NoError(t, err)

	claims, err := app.keys.Verifier.Verify(session.AccessToken)
	require.NoError(t, err)
	require.Equal(t, "root", claims.Subject)
	require.Equal(t, "hwlend", claims.Issuer)
}

func TestSigningKeyPersists(t *testing.T) {
	cfg := testConfig(t)

	first, err := InitKeys(cfg, testLogger())
	require.NoError(t, err)
	second, err := InitKeys(cfg, testLogger())
	require.NoError(t, err)

	require.Equal(t, first.KeySet.PublicJWKS(), second.KeySet.PublicJWKS())

	cfg.SigningKeyFile = ""
	ephemeral, err := InitKeys(cfg, testLogger())
	require.NoError(t, err)
	require.NotEqual(t, first.KeySet.PublicJWKS(), ephemeral.KeySet.PublicJWKS())
}

func TestUnknownDriver(t *testing.T) {
	cfg := testConfig(t)
	cfg.DBDriver = "mysql"

	_, err := New(t.Context(), cfg)
	require.ErrorContains(t, err, "unknown database driver")

	cfg.DBDriver = "postgres"
	cfg.DatabaseURL = ""
	_, err = New(t.Context(), cfg)
	require.ErrorContains(t, err, "HWLEND_DATABASE_URL")
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
