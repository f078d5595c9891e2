package service

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClampLimit(t *testing.T) {
	t.Parallel()

	require.Equal(t, DefaultUsageLimit, clampLimit(0))
	require.Equal(t, 1, clampLimit(-3))
	require.Equal(t, 7, clampLimit(7))
	require.Equal(t, MaxUsageLimit, clampLimit(MaxUsageLimit+1))
}

func TestGetUsageHistory(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := t.Context()
	f.user(t, "alice")
	f.user(t, "bob")
	f.set(t, "HWSet1", 10)
	f.project(t, "P", "alice")

	for qty := 1; qty <= 3; qty++ {
		_, err := f.inventory.Checkout(ctx, "P", "HWSet1", qty, "alice")
		require.NoError(t, err)
	}

	records, err := f.usage.GetUsageHistory(ctx, "P", 2)
	require.NoError(t, err)
	require.Len(t, records, 2)
	require.Equal(t, 3, records[0].Qty)
	require.Equal(t, 2, records[1].Qty)
	require.Greater(t, records[0].ID, records[1].ID)

	_, err = f.usage.GetUsageHistory(ctx, "missing", 0)
	require.ErrorIs(t, err, ErrNotFound)

	_, err = f.usage.GetUsageHistoryForMember(ctx, "P", "bob", 0)
	require.ErrorIs(t, err, ErrNotAMember)

	records, err = f.usage.GetUsageHistoryForMember(ctx, "P", "alice", 0)
	require.NoError(t, err)
	require.Len(t, records, 3)
}
