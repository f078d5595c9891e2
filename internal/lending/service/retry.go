package service

import (
	"context"
	"errors"
	"math/rand/v2"
	"time"

	"github.com/aussiebroadwan/hwlend/internal/lending/store"
	"github.com/aussiebroadwan/hwlend/pkg/slogx"
)

// DefaultMaxTxAttempts bounds how often a transaction that lost a
// concurrency race is re-run.
const DefaultMaxTxAttempts = 5

const (
	retryBaseDelay = 2 * time.Millisecond
	retryMaxDelay  = 100 * time.Millisecond
)

// runTx runs fn in a transaction, re-running it from scratch on
// store.ErrConflict up to maxAttempts times with jittered exponential
// backoff. Domain errors come back unchanged; anything else, including
// running out of attempts, is ErrInternal.
func runTx(ctx context.Context, st store.Store, maxAttempts int, fn func(tx store.Tx) error) error {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxTxAttempts
	}

	var err error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		err = st.WithTx(ctx, fn)
		if err == nil {
			return nil
		}
		if !errors.Is(err, store.ErrConflict) {
			if isDomainError(err) {
				return err
			}
			return internal(err)
		}
		if attempt == maxAttempts {
			break
		}

		slogx.FromContext(ctx).Debug("transaction conflict, retrying", "attempt", attempt, "err", err)
		if werr := sleepCtx(ctx, backoff(attempt)); werr != nil {
			return internal(werr)
		}
	}

	slogx.FromContext(ctx).Error("transaction retries exhausted", "attempts", maxAttempts, "err", err)
	return internal(err)
}

// backoff returns a random delay between d/2 and d, where d doubles per
// attempt up to retryMaxDelay.
func backoff(attempt int) time.Duration {
	d := min(retryBaseDelay<<(attempt-1), retryMaxDelay)
	half := d / 2
	return half + rand.N(half+1)
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
