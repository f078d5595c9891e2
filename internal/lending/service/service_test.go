package service

import (
	"path/filepath"
	"testing"

	"github.com/aussiebroadwan/hwlend/internal/lending/domain"
	"github.com/aussiebroadwan/hwlend/internal/lending/store"
	"github.com/aussiebroadwan/hwlend/internal/lending/store/drivers/sqlite"
	"github.com/aussiebroadwan/hwlend/pkg/cryptox"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	cryptox.SetPepperPath("")
	m.Run()
}

// fixture wires every service to one SQLite database in a temp dir.
type fixture struct {
	st        store.Store
	hardware  *HardwareService
	projects  *ProjectService
	inventory *InventoryService
	usage     *UsageService
	accounts  *AccountService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	st, err := sqlite.NewStore(filepath.Join(t.TempDir(), "hwlend.db"))
	require.NoError(t, err)
	require.NoError(t, st.ApplyMigrations())
	t.Cleanup(func() { _ = st.Close() })

	return &fixture{
		st:        st,
		hardware:  &HardwareService{Store: st},
		projects:  &ProjectService{Store: st},
		inventory: &InventoryService{Store: st},
		usage:     &UsageService{Store: st},
		accounts:  &AccountService{Store: st},
	}
}

func (f *fixture) user(t *testing.T, username string) domain.User {
	t.Helper()
	u, err := f.accounts.Register(t.Context(), username, username+"@example.com", "password-"+username)
	require.NoError(t, err)
	return u
}

func (f *fixture) set(t *testing.T, name string, capacity int) {
	t.Helper()
	_, err := f.hardware.CreateHardwareSet(t.Context(), name, capacity)
	require.NoError(t, err)
}

func (f *fixture) project(t *testing.T, projectID, owner string) domain.Project {
	t.Helper()
	p, err := f.projects.CreateProject(t.Context(), projectID, projectID+" name", "", owner)
	require.NoError(t, err)
	return p
}

func (f *fixture) available(t *testing.T, name string) int {
	t.Helper()
	h, err := f.hardware.GetHardwareSet(t.Context(), name)
	require.NoError(t, err)
	return h.Available
}

func (f *fixture) holding(t *testing.T, projectID, set string) int {
	t.Helper()
	p, err := f.projects.GetProjectDetails(t.Context(), projectID)
	require.NoError(t, err)
	return p.Holding(set)
}

// requireConserved checks that every set's available units plus the units
// held by projects add up to its capacity.
func (f *fixture) requireConserved(t *testing.T) {
	t.Helper()
	inventory, err := f.hardware.Inventory(t.Context())
	require.NoError(t, err)
	for _, inv := range inventory {
		require.Equal(t, inv.Capacity, inv.Available+inv.CheckedOut(), "hw_set %s holdings %v", inv.Name, inv.Holdings)
	}
}
