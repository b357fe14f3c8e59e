package workflow

import (
	"context"
	"log"
	"time"
)

// Sweep evicts every user whose task or submission has passed its
// deadline, cascading across all three stores. Returns the number of
// users cleaned up.
func (w *Workflow) Sweep() int {
	w.mu.Lock()
	defer w.mu.Unlock()

	now := w.now()
	cleaned := 0
	for userID, task := range w.tasks.items() {
		if task.Expired(now) {
			w.cascadeDelete(userID)
			cleaned++
		}
	}
	// Abandoned forms never get a task; evict them on the same horizon.
	for userID, sub := range w.subs.items() {
		if sub.Expired(now) {
			w.cascadeDelete(userID)
			cleaned++
		}
	}
	return cleaned
}

// RunSweeper sweeps on the given interval until ctx is cancelled.
func (w *Workflow) RunSweeper(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = DefaultSweepInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			if n := w.Sweep(); n > 0 {
				log.Printf("sweeper: cleaned up %d expired submission(s)", n)
			}
		case <-ctx.Done():
			return
		}
	}
}
