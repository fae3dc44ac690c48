package watch

import (
	"context"
	"time"
)

// Run calls onChange once per burst of changes: after a change arrives,
// further changes are collected until quiet passes without one. Run
// returns nil when ctx is done or the watcher is stopped.
func (w *Watcher) Run(ctx context.Context, quiet time.Duration, onChange func([]Change)) error {
	var (
		batch []Change
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case change, ok := <-w.changes:
			if !ok {
				return nil
			}
			batch = append(batch, change)
			if timer == nil {
				timer = time.NewTimer(quiet)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(quiet)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			pending := batch
			batch = nil
			onChange(pending)
		}
	}
}
