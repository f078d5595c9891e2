package service

import (
	"errors"
	"testing"
	"time"

	"github.com/aussiebroadwan/hwlend/internal/lending/store"
	"github.com/stretchr/testify/require"
)

func TestRunTx(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := t.Context()

	t.Run("retries conflicts", func(t *testing.T) {
		calls := 0
		err := runTx(ctx, f.st, 3, func(store.Tx) error {
			calls++
			if calls < 3 {
				return store.ErrConflict
			}
			return nil
		})
		require.NoError(t, err)
		require.Equal(t, 3, calls)
	})

	t.Run("gives up as internal error", func(t *testing.T) {
		calls := 0
		err := runTx(ctx, f.st, 2, func(store.Tx) error {
			calls++
			return store.ErrConflict
		})
		require.ErrorIs(t, err, ErrInternal)
		require.Equal(t, 2, calls)
	})

	t.Run("domain errors pass through", func(t *testing.T) {
		calls := 0
		err := runTx(ctx, f.st, 5, func(store.Tx) error {
			calls++
			return ErrNotOwner
		})
		require.ErrorIs(t, err, ErrNotOwner)
		require.Equal(t, 1, calls)
	})

	t.Run("other errors are internal", func(t *testing.T) {
		err := runTx(ctx, f.st, 5, func(store.Tx) error {
			return errors.New("disk on fire")
		})
		require.ErrorIs(t, err, ErrInternal)
	})
}

func TestBackoffBounds(t *testing.T) {
	t.Parallel()

	for attempt := 1; attempt <= 10; attempt++ {
		d := backoff(attempt)
		require.Greater(t, d, time.Duration(0))
		require.LessOrEqual(t, d, retryMaxDelay)
	}
}
