package thunk

import (
	"context"
	"sync"
	"time"

	"github.com/kvit-s/kvit-replace/internal/replace/bus"
)

// DebounceWindow is the coalescing window for search input, per
// spec.md §4.E: only applied when is_large_folder is true.
const DebounceWindow = 300 * time.Millisecond

// Debouncer cancels any in-flight timer on new input, grounded on the
// cancel-on-new-signal idiom in internal/workspace/lock.go's signal
// handling goroutine.
type Debouncer struct {
	mu    sync.Mutex
	timer *time.Timer
}

// Schedule coalesces repeated calls within DebounceWindow into a single
// firing of fn. When isLargeFolder is false, fn runs immediately in a
// new goroutine instead of waiting out the window.
func (d *Debouncer) Schedule(isLargeFolder bool, fn func()) {
	if !isLargeFolder {
		go fn()
		return
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(DebounceWindow, fn)
}

// Cancel stops any pending timer without firing it.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

// ScheduleSearch debounces a ProcessSearch invocation through d.
func ScheduleSearch(d *Debouncer, isLargeFolder bool, ctx context.Context, b *bus.Bus, t Thunk) {
	d.Schedule(isLargeFolder, func() {
		_ = t(ctx, b)
	})
}
