package jobs

import (
	"context"
	"time"
)

// StepFunc is called after each completed step with the step number
// (starting at 1) and the completed percentage.
type StepFunc func(step int, percentage float64) error

// Simulate sleeps interval before each of steps steps and reports progress
// through fn. It stops early when ctx is done or fn fails.
func Simulate(ctx context.Context, steps int, interval time.Duration, fn StepFunc) error {
	if steps <= 0 {
		return nil
	}

	timer := time.NewTimer(interval)
	defer timer.Stop()

	for step := 1; step <= steps; step++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}

		if err := fn(step, Percentage(step, steps)); err != nil {
			return err
		}
		timer.Reset(interval)
	}
	return nil
}

// Percentage returns step/total as a percentage rounded to two decimals.
func Percentage(step, total int) float64 {
	if total <= 0 {
		return 0
	}
	return round2(float64(step) / float64(total) * 100)
}
