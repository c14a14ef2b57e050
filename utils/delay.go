package utils

import (
	"context"
	"math/rand"
	"time"
)

// RandomDelay sleeps for a random duration between min and max.
// Fixed delays between form actions are a detectable pattern; random ones
// look more like a human filling in a login form.
func RandomDelay(min, max time.Duration) {
	diff := max - min
	if diff <= 0 {
		time.Sleep(min)
		return
	}
	sleep := min + time.Duration(rand.Int63n(int64(diff)))
	time.Sleep(sleep)
}

// Sleep waits for d or until ctx is done, whichever comes first.
// Returns ctx.Err() when the context ends the wait early.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
