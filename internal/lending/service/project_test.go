package service

import (
	"testing"

	"github.com/aussiebroadwan/hwlend/internal/lending/domain"
	"github.com/stretchr/testify/require"
)

func TestCreateProject(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := t.Context()
	f.user(t, "alice")

	p, err := f.projects.CreateProject(ctx, "proj-a", "Project A", "robots", "alice")
	require.NoError(t, err)
	require.Equal(t, "proj-a", p.ProjectID)
	require.Equal(t, "alice", p.Owner)
	require.Equal(t, []string{"alice"}, p.Members)
	require.Empty(t, p.Holdings)

	t.Run("duplicate id", func(t *testing.T) {
		_, err := f.projects.CreateProject(ctx, "proj-a", "Other", "", "alice")
		require.ErrorIs(t, err, ErrDuplicateID)
	})

	t.Run("unknown owner", func(t *testing.T) {
		_, err := f.projects.CreateProject(ctx, "proj-b", "B", "", "ghost")
		require.ErrorIs(t, err, ErrUserNotFound)
		require.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("blank fields", func(t *testing.T) {
		_, err := f.projects.CreateProject(ctx, "", "B", "", "alice")
		require.ErrorIs(t, err, ErrInvalidRequest)
		_, err = f.projects.CreateProject(ctx, "proj-b", " ", "", "alice")
		require.ErrorIs(t, err, ErrInvalidRequest)
	})
}

func TestJoinAndLeaveProject(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := t.Context()
	f.user(t, "alice")
	f.user(t, "bob")
	f.project(t, "proj-a", "alice")

	require.NoError(t, f.projects.JoinProject(ctx, "proj-a", "bob"))
	require.ErrorIs(t, f.projects.JoinProject(ctx, "proj-a", "bob"), ErrAlreadyMember)
	require.ErrorIs(t, f.projects.JoinProject(ctx, "missing", "bob"), ErrNotFound)

	p, err := f.projects.GetProjectDetails(ctx, "proj-a")
	require.NoError(t, err)
	require.Equal(t, []string{"alice", "bob"}, p.Members)

	t.Run("owner cannot leave", func(t *testing.T) {
		require.ErrorIs(t, f.projects.LeaveProject(ctx, "proj-a", "alice"), ErrOwnerCannotLeave)
	})

	t.Run("leave keeps holdings", func(t *testing.T) {
		f.set(t, "HWSet1", 10)
		_, err := f.inventory.Checkout(ctx, "proj-a", "HWSet1", 3, "bob")
		require.NoError(t, err)

		require.NoError(t, f.projects.LeaveProject(ctx, "proj-a", "bob"))
		require.Equal(t, 3, f.holding(t, "proj-a", "HWSet1"))

		p, err := f.projects.GetProjectDetails(ctx, "proj-a")
		require.NoError(t, err)
		require.False(t, p.IsMember("bob"))
	})

	t.Run("leave without membership", func(t *testing.T) {
		require.ErrorIs(t, f.projects.LeaveProject(ctx, "proj-a", "bob"), ErrNotFound)
	})
}

func TestOwnerOnlyOperations(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := t.Context()
	f.user(t, "alice")
	f.user(t, "bob")
	f.user(t, "carol")
	f.project(t, "proj-a", "alice")
	require.NoError(t, f.projects.JoinProject(ctx, "proj-a", "bob"))

	_, err := f.projects.RenameProject(ctx, "proj-a", "New", "bob")
	require.ErrorIs(t, err, ErrNotOwner)
	_, err = f.projects.ChangeProjectID(ctx, "proj-a", "proj-z", "bob")
	require.ErrorIs(t, err, ErrNotOwner)
	_, err = f.projects.UpdateDescription(ctx, "proj-a", "text", "bob")
	require.ErrorIs(t, err, ErrNotOwner)
	require.ErrorIs(t, f.projects.InviteUser(ctx, "proj-a", "carol", "bob"), ErrNotOwner)
	require.ErrorIs(t, f.projects.DeleteProject(ctx, "proj-a", "bob"), ErrNotOwner)

	p, err := f.projects.RenameProject(ctx, "proj-a", "Renamed", "alice")
	require.NoError(t, err)
	require.Equal(t, "Renamed", p.Name)

	p, err = f.projects.UpdateDescription(ctx, "proj-a", "new text", "alice")
	require.NoError(t, err)
	require.Equal(t, "new text", p.Description)

	t.Run("invite", func(t *testing.T) {
		require.ErrorIs(t, f.projects.InviteUser(ctx, "proj-a", "ghost", "alice"), ErrUserNotFound)
		require.ErrorIs(t, f.projects.InviteUser(ctx, "proj-a", "bob", "alice"), ErrAlreadyMember)
		require.NoError(t, f.projects.InviteUser(ctx, "proj-a", "carol", "alice"))

		p, err := f.projects.GetProjectForMember(ctx, "proj-a", "carol")
		require.NoError(t, err)
		require.True(t, p.IsMember("carol"))
	})
}

func TestUpdateProjectAppliesAllFields(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := t.Context()
	f.user(t, "alice")
	f.user(t, "bob")
	f.project(t, "proj-a", "alice")
	f.project(t, "proj-taken", "bob")

	name, desc, id := "Both", "changed", "proj-b"
	p, err := f.projects.UpdateProject(ctx, "proj-a", "alice", ProjectUpdate{Name: &name, Description: &desc, ProjectID: &id})
	require.NoError(t, err)
	require.Equal(t, "proj-b", p.ProjectID)
	require.Equal(t, "Both", p.Name)
	require.Equal(t, "changed", p.Description)

	t.Run("duplicate id rolls back the other fields", func(t *testing.T) {
		name, taken := "Should not stick", "proj-taken"
		_, err := f.projects.UpdateProject(ctx, "proj-b", "alice", ProjectUpdate{Name: &name, ProjectID: &taken})
		require.ErrorIs(t, err, ErrDuplicateID)

		p, err := f.projects.GetProjectDetails(ctx, "proj-b")
		require.NoError(t, err)
		require.Equal(t, "Both", p.Name)
	})

	t.Run("empty update", func(t *testing.T) {
		_, err := f.projects.UpdateProject(ctx, "proj-b", "alice", ProjectUpdate{})
		require.ErrorIs(t, err, ErrInvalidRequest)
	})
}

func TestChangeProjectIDKeepsState(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := t.Context()
	f.user(t, "alice")
	f.set(t, "HWSet1", 10)
	f.project(t, "proj-a", "alice")

	_, err := f.inventory.Checkout(ctx, "proj-a", "HWSet1", 4, "alice")
	require.NoError(t, err)

	p, err := f.projects.ChangeProjectID(ctx, "proj-a", "proj-b", "alice")
	require.NoError(t, err)
	require.Equal(t, "proj-b", p.ProjectID)
	require.Equal(t, 4, p.Holding("HWSet1"))

	_, err = f.projects.GetProjectDetails(ctx, "proj-a")
	require.ErrorIs(t, err, ErrNotFound)

	records, err := f.usage.GetUsageHistory(ctx, "proj-b", 0)
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.Equal(t, "proj-b", records[0].ProjectID)
}

func TestDeleteProjectReturnsHoldings(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := t.Context()
	f.user(t, "alice")
	f.set(t, "HWSet1", 10)
	f.set(t, "HWSet2", 5)
	p := f.project(t, "proj-a", "alice")

	_, err := f.inventory.Checkout(ctx, "proj-a", "HWSet1", 4, "alice")
	require.NoError(t, err)
	_, err = f.inventory.Checkout(ctx, "proj-a", "HWSet2", 5, "alice")
	require.NoError(t, err)
	require.Equal(t, 6, f.available(t, "HWSet1"))

	require.NoError(t, f.projects.DeleteProject(ctx, "proj-a", "alice"))

	require.Equal(t, 10, f.available(t, "HWSet1"))
	require.Equal(t, 5, f.available(t, "HWSet2"))

	_, err = f.projects.GetProjectDetails(ctx, "proj-a")
	require.ErrorIs(t, err, ErrNotFound)

	projects, err := f.projects.ListProjectsForUser(ctx, "alice")
	require.NoError(t, err)
	require.Empty(t, projects)

	require.ErrorIs(t, f.projects.DeleteProject(ctx, "proj-a", "alice"), ErrNotFound)

	// The usage log keeps the checkouts and records the returns
	records, err := f.st.Usage().ListUsage(ctx, p.ID, 10)
	require.NoError(t, err)
	require.Len(t, records, 4)
	returned := map[string]int{}
	for _, r := range records {
		require.Equal(t, "proj-a", r.ProjectID)
		if r.Action == domain.ActionReturn {
			returned[r.HWSetName] = r.Qty
		}
	}
	require.Equal(t, map[string]int{"HWSet1": 4, "HWSet2": 5}, returned)
}

func TestListProjectsForUser(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := t.Context()
	f.user(t, "alice")
	f.user(t, "bob")
	f.set(t, "HWSet1", 10)
	f.project(t, "proj-b", "alice")
	f.project(t, "proj-a", "bob")
	f.project(t, "proj-c", "bob")
	require.NoError(t, f.projects.JoinProject(ctx, "proj-a", "alice"))
	_, err := f.inventory.Checkout(ctx, "proj-a", "HWSet1", 2, "alice")
	require.NoError(t, err)

	projects, err := f.projects.ListProjectsForUser(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, projects, 2)
	require.Equal(t, "proj-a", projects[0].ProjectID)
	require.Equal(t, 2, projects[0].Holding("HWSet1"))
	require.Equal(t, "proj-b", projects[1].ProjectID)

	_, err = f.projects.GetProjectForMember(ctx, "proj-c", "alice")
	require.ErrorIs(t, err, ErrNotAMember)
}
