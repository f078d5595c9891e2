package sqlite_test

import (
	"path/filepath"
	"testing"

	"github.com/aussiebroadwan/hwlend/internal/lending/store"
	"github.com/aussiebroadwan/hwlend/internal/lending/store/drivers/sqlite"
	"github.com/aussiebroadwan/hwlend/internal/lending/store/storetest"
	"github.com/stretchr/testify/require"
)

func openTemp(t *testing.T) store.Store {
	t.Helper()

	st, err := sqlite.NewStore(filepath.Join(t.TempDir(), "hwlend.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	require.NoError(t, st.ApplyMigrations())
	return st
}

func TestStore(t *testing.T) {
	storetest.Run(t, openTemp)
}

func TestStore_InMemory(t *testing.T) {
	storetest.Run(t, func(t *testing.T) store.Store {
		st, err := sqlite.NewStore(":memory:")
		require.NoError(t, err)
		t.Cleanup(func() { _ = st.Close() })
		require.NoError(t, st.ApplyMigrations())
		return st
	})
}

func TestApplyMigrations_Idempotent(t *testing.T) {
	st := openTemp(t)
	require.NoError(t, st.ApplyMigrations())
}
