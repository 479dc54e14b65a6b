package client

import (
	"context"

	"github.com/tair/market/pkg/logger"
)

// ScrollEvent is one scroll position sample of the feed viewport
type ScrollEvent struct {
	Offset         float64
	ViewportHeight float64
	ContentHeight  float64
}

// NearBottom reports whether the viewport is within threshold of the end
func (e ScrollEvent) NearBottom(threshold float64) bool {
	return e.Offset+e.ViewportHeight >= e.ContentHeight-threshold
}

// Sizer is the paginated list a ScrollWatcher grows
type Sizer interface {
	Size() int
	SetSize(ctx context.Context, n int) error
	Exhausted() bool
}

// ScrollWatcher asks for one more page each time the viewport reaches the bottom
type ScrollWatcher struct {
	sizer     Sizer
	threshold float64
}

func NewScrollWatcher(sizer Sizer, threshold float64) *ScrollWatcher {
	return &ScrollWatcher{sizer: sizer, threshold: threshold}
}

// Run consumes events until ctx is cancelled or events is closed. It returns
// ctx.Err() on cancellation and nil when the event source ends.
func (w *ScrollWatcher) Run(ctx context.Context, events <-chan ScrollEvent) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if !ev.NearBottom(w.threshold) || w.sizer.Exhausted() {
				continue
			}
			if err := w.sizer.SetSize(ctx, w.sizer.Size()+1); err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				logger.Warn(ctx).Err(err).Msg("Failed to load next page")
			}
		}
	}
}
