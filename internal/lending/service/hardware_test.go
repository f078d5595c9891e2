package service

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCreateHardwareSet(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := t.Context()

	h, err := f.hardware.CreateHardwareSet(ctx, "HWSet1", 10)
	require.NoError(t, err)
	require.Equal(t, "HWSet1", h.Name)
	require.Equal(t, 10, h.Capacity)
	require.Equal(t, 10, h.Available)

	t.Run("duplicate name", func(t *testing.T) {
		_, err := f.hardware.CreateHardwareSet(ctx, "HWSet1", 3)
		require.ErrorIs(t, err, ErrDuplicateName)
	})

	t.Run("capacity must be positive", func(t *testing.T) {
		_, err := f.hardware.CreateHardwareSet(ctx, "HWSet2", 0)
		require.ErrorIs(t, err, ErrInvalidCapacity)
		_, err = f.hardware.CreateHardwareSet(ctx, "HWSet2", -4)
		require.ErrorIs(t, err, ErrInvalidCapacity)
	})

	t.Run("name required", func(t *testing.T) {
		_, err := f.hardware.CreateHardwareSet(ctx, "  ", 4)
		require.ErrorIs(t, err, ErrInvalidRequest)
	})
}

func TestListAndGetHardware(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := t.Context()

	sets, err := f.hardware.ListHardware(ctx)
	require.NoError(t, err)
	require.NotNil(t, sets)
	require.Empty(t, sets)

	f.set(t, "HWSet2", 5)
	f.set(t, "HWSet1", 10)

	sets, err = f.hardware.ListHardware(ctx)
	require.NoError(t, err)
	require.Len(t, sets, 2)
	require.Equal(t, "HWSet1", sets[0].Name)
	require.Equal(t, "HWSet2", sets[1].Name)

	_, err = f.hardware.GetHardwareSet(ctx, "missing")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestInventory(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := t.Context()

	inventory, err := f.hardware.Inventory(ctx)
	require.NoError(t, err)
	require.Empty(t, inventory)

	f.user(t, "alice")
	f.user(t, "bob")
	f.set(t, "HWSet1", 10)
	f.set(t, "HWSet2", 5)
	f.project(t, "proj-a", "alice")
	f.project(t, "proj-b", "bob")
	f.project(t, "proj-idle", "bob")

	_, err = f.inventory.Checkout(ctx, "proj-a", "HWSet1", 4, "alice")
	require.NoError(t, err)
	_, err = f.inventory.Checkout(ctx, "proj-b", "HWSet1", 3, "bob")
	require.NoError(t, err)
	_, err = f.inventory.Checkout(ctx, "proj-b", "HWSet2", 5, "bob")
	require.NoError(t, err)

	inventory, err = f.hardware.Inventory(ctx)
	require.NoError(t, err)
	require.Len(t, inventory, 2)

	require.Equal(t, "HWSet1", inventory[0].Name)
	require.Equal(t, 10, inventory[0].Capacity)
	require.Equal(t, 3, inventory[0].Available)
	require.Equal(t, 7, inventory[0].CheckedOut())
	require.Equal(t, map[string]int{"proj-a": 4, "proj-b": 3}, inventory[0].Holdings)

	require.Equal(t, "HWSet2", inventory[1].Name)
	require.Equal(t, 0, inventory[1].Available)
	require.Equal(t, map[string]int{"proj-b": 5}, inventory[1].Holdings)

	f.requireConserved(t)
}
