package autosave

import (
	"context"
	"time"
)

// DefaultInterval is used when Loop.Interval is not positive.
const DefaultInterval = 30 * time.Second

// Loop calls Save every Interval until its context is done, then once more.
type Loop struct {
	Interval time.Duration
	Save     func(ctx context.Context) error
	// OnError receives failed tick saves. The loop keeps running.
	OnError func(error)
}

// Run blocks until ctx is done and returns the result of the final save.
// The final save runs on a context that is no longer canceled.
func (l *Loop) Run(ctx context.Context) error {
	interval := l.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return l.Save(context.WithoutCancel(ctx))
		case <-ticker.C:
			if err := l.Save(ctx); err != nil && l.OnError != nil {
				l.OnError(err)
			}
		}
	}
}
