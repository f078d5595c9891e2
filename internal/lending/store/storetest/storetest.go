// Package storetest holds the behaviour every store driver must share. Driver
// packages call Run from their own tests.
package storetest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aussiebroadwan/hwlend/internal/lending/domain"
	"github.com/aussiebroadwan/hwlend/internal/lending/store"
	"github.com/aussiebroadwan/hwlend/pkg/idx"
	"github.com/stretchr/testify/require"
)

// Opener returns a freshly migrated, empty store.
type Opener func(t *testing.T) store.Store

// Run exercises every repository of the store returned by open.
func Run(t *testing.T, open Opener) {
	t.Run("Users", func(t *testing.T) { testUsers(t, open(t)) })
	t.Run("HardwareSets", func(t *testing.T) { testHardwareSets(t, open(t)) })
	t.Run("Projects", func(t *testing.T) { testProjects(t, open(t)) })
	t.Run("Usage", func(t *testing.T) { testUsage(t, open(t)) })
	t.Run("Transactions", func(t *testing.T) { testTransactions(t, open(t)) })
}

func mustUser(t *testing.T, st store.Store, username string) {
	t.Helper()
	require.NoError(t, st.Users().CreateUser(t.Context(), domain.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "hash",
		Role:         domain.RoleUser,
	}))
}

func mustProject(t *testing.T, st store.Store, projectID, owner string) domain.Project {
	t.Helper()
	ctx := t.Context()
	p := domain.Project{ID: idx.New().String(), ProjectID: projectID, Name: projectID + " name", Owner: owner}
	require.NoError(t, st.Projects().CreateProject(ctx, p))
	require.NoError(t, st.Members().AddMember(ctx, p.ID, owner))

	got, err := st.Projects().GetProject(ctx, projectID)
	require.NoError(t, err)
	return got
}

func mustSet(t *testing.T, st store.Store, name string, capacity int) {
	t.Helper()
	require.NoError(t, st.HardwareSets().CreateHardwareSet(t.Context(), domain.HardwareSet{
		Name: name, Capacity: capacity, Available: capacity,
	}))
}

func testUsers(t *testing.T, st store.Store) {
	ctx := t.Context()
	users := st.Users()

	mustUser(t, st, "alice")
	require.ErrorIs(t, users.CreateUser(ctx, domain.User{Username: "alice", PasswordHash: "x"}), store.ErrAlreadyExists)

	u, err := users.GetUser(ctx, "alice")
	require.NoError(t, err)
	require.Equal(t, "alice@example.com", u.Email)
	require.Equal(t, domain.RoleUser, u.Role)
	require.False(t, u.MFAEnabled)
	require.Nil(t, u.ResetTokenExpiry)

	_, err = users.GetUser(ctx, "nobody")
	require.ErrorIs(t, err, store.ErrNotFound)

	require.NoError(t, users.UpdatePasswordHash(ctx, "alice", "hash2"))
	require.ErrorIs(t, users.UpdatePasswordHash(ctx, "nobody", "hash2"), store.ErrNotFound)

	// Reset tokens
	expiry := time.Now().Add(time.Hour).Truncate(time.Millisecond)
	require.NoError(t, users.SetResetToken(ctx, "alice", "fp-1", expiry))
	u, err = users.GetUserByResetToken(ctx, "fp-1")
	require.NoError(t, err)
	require.Equal(t, "alice", u.Username)
	require.Equal(t, "hash2", u.PasswordHash)
	require.NotNil(t, u.ResetTokenExpiry)
	require.True(t, expiry.Equal(*u.ResetTokenExpiry))

	_, err = users.GetUserByResetToken(ctx, "")
	require.ErrorIs(t, err, store.ErrNotFound)

	n, err := users.PurgeExpiredResetTokens(ctx, time.Now())
	require.NoError(t, err)
	require.Zero(t, n)
	n, err = users.PurgeExpiredResetTokens(ctx, expiry.Add(time.Second))
	require.NoError(t, err)
	require.EqualValues(t, 1, n)
	_, err = users.GetUserByResetToken(ctx, "fp-1")
	require.ErrorIs(t, err, store.ErrNotFound)

	// Clearing is conditional on the fingerprint, so a token is consumed once
	require.NoError(t, users.SetResetToken(ctx, "alice", "fp-2", expiry))
	require.ErrorIs(t, users.ClearResetToken(ctx, "alice", "fp-1"), store.ErrNotFound)
	require.ErrorIs(t, users.ClearResetToken(ctx, "alice", ""), store.ErrNotFound)
	require.NoError(t, users.ClearResetToken(ctx, "alice", "fp-2"))
	require.ErrorIs(t, users.ClearResetToken(ctx, "alice", "fp-2"), store.ErrNotFound)
	_, err = users.GetUserByResetToken(ctx, "fp-2")
	require.ErrorIs(t, err, store.ErrNotFound)

	// MFA: enabling needs a secret first
	require.ErrorIs(t, users.EnableMFA(ctx, "alice"), store.ErrNotFound)
	require.NoError(t, users.SetMFASecret(ctx, "alice", "JBSWY3DPEHPK3PXP"))
	require.NoError(t, users.EnableMFA(ctx, "alice"))
	u, err = users.GetUser(ctx, "alice")
	require.NoError(t, err)
	require.True(t, u.MFAEnabled)
	require.Equal(t, "JBSWY3DPEHPK3PXP", u.MFASecret)

	require.NoError(t, users.DisableMFA(ctx, "alice"))
	u, err = users.GetUser(ctx, "alice")
	require.NoError(t, err)
	require.False(t, u.MFAEnabled)
	require.Empty(t, u.MFASecret)

	require.NoError(t, users.DeleteUser(ctx, "alice"))
	require.ErrorIs(t, users.DeleteUser(ctx, "alice"), store.ErrNotFound)
}

func testHardwareSets(t *testing.T, st store.Store) {
	ctx := t.Context()
	sets := st.HardwareSets()

	mustSet(t, st, "HWSet2", 50)
	mustSet(t, st, "HWSet1", 100)
	require.ErrorIs(t, sets.CreateHardwareSet(ctx, domain.HardwareSet{Name: "HWSet1", Capacity: 1, Available: 1}), store.ErrAlreadyExists)

	// Schema rejects impossible stock levels
	require.Error(t, sets.CreateHardwareSet(ctx, domain.HardwareSet{Name: "bad", Capacity: 0, Available: 0}))
	require.Error(t, sets.CreateHardwareSet(ctx, domain.HardwareSet{Name: "bad", Capacity: 1, Available: 2}))

	list, err := sets.ListHardwareSets(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, "HWSet1", list[0].Name)
	require.Equal(t, "HWSet2", list[1].Name)

	h, err := sets.GetHardwareSet(ctx, "HWSet1")
	require.NoError(t, err)
	require.Equal(t, 100, h.Capacity)
	require.Equal(t, 100, h.Available)
	require.Zero(t, h.Version)

	_, err = sets.GetHardwareSet(ctx, "HWSet9")
	require.ErrorIs(t, err, store.ErrNotFound)

	require.NoError(t, sets.UpdateAvailable(ctx, "HWSet1", 90, h.Version))
	// Same expected version again lost the race
	require.ErrorIs(t, sets.UpdateAvailable(ctx, "HWSet1", 80, h.Version), store.ErrConflict)

	h, err = sets.GetHardwareSet(ctx, "HWSet1")
	require.NoError(t, err)
	require.Equal(t, 90, h.Available)
	require.EqualValues(t, 1, h.Version)

	require.Error(t, sets.UpdateAvailable(ctx, "HWSet1", 101, h.Version))
	require.Error(t, sets.UpdateAvailable(ctx, "HWSet1", -1, h.Version))
}

func testProjects(t *testing.T, st store.Store) {
	ctx := t.Context()
	projects := st.Projects()

	mustUser(t, st, "alice")
	mustUser(t, st, "bob")
	mustSet(t, st, "HWSet1", 10)

	p := mustProject(t, st, "P1", "alice")
	require.Equal(t, []string{"alice"}, p.Members)
	require.Empty(t, p.Holdings)

	dup := domain.Project{ID: idx.New().String(), ProjectID: "P1", Name: "dup", Owner: "bob"}
	require.ErrorIs(t, projects.CreateProject(ctx, dup), store.ErrAlreadyExists)

	_, err := projects.GetProject(ctx, "missing")
	require.ErrorIs(t, err, store.ErrNotFound)

	// Members
	require.NoError(t, st.Members().AddMember(ctx, p.ID, "bob"))
	require.ErrorIs(t, st.Members().AddMember(ctx, p.ID, "bob"), store.ErrAlreadyExists)

	// Holdings
	require.NoError(t, st.Holdings().SetHolding(ctx, p.ID, "HWSet1", 4))
	require.NoError(t, st.Holdings().SetHolding(ctx, p.ID, "HWSet1", 6))

	p, err = projects.GetProject(ctx, "P1")
	require.NoError(t, err)
	require.Equal(t, []string{"alice", "bob"}, p.Members)
	require.Equal(t, map[string]int{"HWSet1": 6}, p.Holdings)
	require.True(t, p.IsMember("bob"))
	require.True(t, p.IsOwner("alice"))

	// Optimistic version guard
	require.NoError(t, projects.BumpVersion(ctx, p.ID, p.Version))
	require.ErrorIs(t, projects.BumpVersion(ctx, p.ID, p.Version), store.ErrConflict)

	// Public id change keeps relations intact
	mustProject(t, st, "P2", "bob")
	require.ErrorIs(t, projects.UpdateProjectID(ctx, p.ID, "P2"), store.ErrAlreadyExists)
	require.NoError(t, projects.UpdateProjectID(ctx, p.ID, "P1-renamed"))
	require.NoError(t, projects.UpdateName(ctx, p.ID, "New name"))
	require.NoError(t, projects.UpdateDescription(ctx, p.ID, "About"))

	_, err = projects.GetProject(ctx, "P1")
	require.ErrorIs(t, err, store.ErrNotFound)
	p, err = projects.GetProject(ctx, "P1-renamed")
	require.NoError(t, err)
	require.Equal(t, "New name", p.Name)
	require.Equal(t, "About", p.Description)
	require.Equal(t, 6, p.Holding("HWSet1"))
	require.Len(t, p.Members, 2)

	forBob, err := projects.ListProjectsForUser(ctx, "bob")
	require.NoError(t, err)
	require.Len(t, forBob, 2)
	require.Equal(t, "P1-renamed", forBob[0].ProjectID)
	require.Equal(t, "P2", forBob[1].ProjectID)
	require.Equal(t, map[string]int{"HWSet1": 6}, forBob[0].Holdings)

	owned, err := projects.ListProjectsOwnedBy(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, owned, 1)

	all, err := projects.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	require.Equal(t, "P1-renamed", all[0].ProjectID)
	require.Equal(t, map[string]int{"HWSet1": 6}, all[0].Holdings)
	require.Equal(t, []string{"bob"}, all[1].Members)

	// Zero holding removes the row, membership removal
	require.NoError(t, st.Holdings().SetHolding(ctx, p.ID, "HWSet1", 0))
	require.NoError(t, st.Members().RemoveMember(ctx, p.ID, "bob"))
	require.ErrorIs(t, st.Members().RemoveMember(ctx, p.ID, "bob"), store.ErrNotFound)

	p, err = projects.GetProject(ctx, "P1-renamed")
	require.NoError(t, err)
	require.Empty(t, p.Holdings)
	require.Equal(t, []string{"alice"}, p.Members)

	require.NoError(t, st.Members().RemoveUserFromAll(ctx, "bob"))
	forBob, err = projects.ListProjectsForUser(ctx, "bob")
	require.NoError(t, err)
	require.Empty(t, forBob)

	require.NoError(t, projects.DeleteProject(ctx, p.ID))
	require.ErrorIs(t, projects.DeleteProject(ctx, p.ID), store.ErrNotFound)
	_, err = projects.GetProject(ctx, "P1-renamed")
	require.ErrorIs(t, err, store.ErrNotFound)

	all, err = projects.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	require.Equal(t, "P2", all[0].ProjectID)
}

func testUsage(t *testing.T, st store.Store) {
	ctx := t.Context()
	usage := st.Usage()

	mustUser(t, st, "alice")
	mustSet(t, st, "HWSet1", 10)
	p := mustProject(t, st, "P1", "alice")

	base := time.Now().Add(-time.Hour).Truncate(time.Millisecond)
	var ids []string
	for i, action := range []domain.UsageAction{domain.ActionCheckout, domain.ActionCheckin, domain.ActionCheckout} {
		at := base.Add(time.Duration(i) * time.Minute)
		rec := domain.UsageRecord{
			ID:         idx.NewAt(at).String(),
			ProjectRef: p.ID,
			ProjectID:  "P1",
			HWSetName:  "HWSet1",
			Username:   "alice",
			Action:     action,
			Qty:        i + 1,
			Timestamp:  at,
		}
		require.NoError(t, usage.AppendUsage(ctx, rec))
		ids = append(ids, rec.ID)
	}

	recs, err := usage.ListUsage(ctx, p.ID, 2)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	require.Equal(t, ids[2], recs[0].ID)
	require.Equal(t, ids[1], recs[1].ID)
	require.Equal(t, domain.ActionCheckin, recs[1].Action)
	require.Equal(t, "P1", recs[0].ProjectID)
	require.True(t, base.Add(2*time.Minute).Equal(recs[0].Timestamp))

	// Records follow the project through an id change
	require.NoError(t, st.Projects().UpdateProjectID(ctx, p.ID, "P1b"))
	recs, err = usage.ListUsage(ctx, p.ID, 10)
	require.NoError(t, err)
	require.Len(t, recs, 3)
	require.Equal(t, "P1b", recs[0].ProjectID)

	// Unarchived records come back oldest first until marked
	pending, err := usage.ListUnarchived(ctx, 10)
	require.NoError(t, err)
	require.Len(t, pending, 3)
	require.Equal(t, ids[0], pending[0].ID)

	require.NoError(t, usage.MarkArchived(ctx, ids[1:], time.Now()))
	pending, err = usage.ListUnarchived(ctx, 10)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	require.Equal(t, ids[0], pending[0].ID)
	require.NoError(t, usage.MarkArchived(ctx, ids[:1], time.Now()))

	// A record committed after newer ids were archived is still picked up
	late := domain.UsageRecord{
		ID:         idx.NewAt(base.Add(-time.Minute)).String(),
		ProjectRef: p.ID,
		ProjectID:  "P1b",
		HWSetName:  "HWSet1",
		Username:   "alice",
		Action:     domain.ActionCheckout,
		Qty:        1,
		Timestamp:  base.Add(-time.Minute),
	}
	require.Less(t, late.ID, ids[0])
	require.NoError(t, usage.AppendUsage(ctx, late))
	pending, err = usage.ListUnarchived(ctx, 10)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	require.Equal(t, late.ID, pending[0].ID)

	// The log outlives the project and keeps the id it was written with
	require.NoError(t, st.Projects().DeleteProject(ctx, p.ID))
	recs, err = usage.ListUsage(ctx, p.ID, 10)
	require.NoError(t, err)
	require.Len(t, recs, 4)
	require.Equal(t, "P1", recs[0].ProjectID)
	require.Equal(t, "P1b", recs[3].ProjectID)
}

func testTransactions(t *testing.T, st store.Store) {
	ctx := t.Context()
	errBoom := errors.New("boom")

	err := st.WithTx(ctx, func(tx store.Tx) error {
		mustUser(t, tx, "ghost")
		return errBoom
	})
	require.ErrorIs(t, err, errBoom)
	_, err = st.Users().GetUser(ctx, "ghost")
	require.ErrorIs(t, err, store.ErrNotFound)

	require.NoError(t, st.WithTx(ctx, func(tx store.Tx) error {
		mustUser(t, tx, "alice")

		// Nested transactions are refused
		return expectNested(ctx, tx)
	}))
	_, err = st.Users().GetUser(ctx, "alice")
	require.NoError(t, err)

	require.NoError(t, st.Ping(ctx))
}

func expectNested(ctx context.Context, tx store.Tx) error {
	if _, err := tx.Tx(ctx); err == nil {
		return errors.New("nested transaction was allowed")
	}
	return nil
}
