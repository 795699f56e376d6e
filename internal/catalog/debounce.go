package catalog

import (
	"sync"
	"time"
)

// DebounceInterval is how long input must stay quiet before a
// triggered function runs.
const DebounceInterval = 300 * time.Millisecond

// Debouncer coalesces bursts of triggers into one call after a period
// of quiescence. Each Trigger restarts the countdown; only the last
// function of a burst runs.
type Debouncer struct {
	mu    sync.Mutex
	d     time.Duration
	timer *time.Timer
}

func NewDebouncer(d time.Duration) *Debouncer {
	if d <= 0 {
		d = DebounceInterval
	}
	return &Debouncer{d: d}
}

// Trigger schedules fn to run once the debounce interval elapses with
// no further triggers. fn runs on a timer goroutine.
func (db *Debouncer) Trigger(fn func()) {
	db.mu.Lock()
	defer db.mu.Unlock()

	if db.timer != nil {
		db.timer.Stop()
	}
	db.timer = time.AfterFunc(db.d, fn)
}

// Stop cancels any pending call.
func (db *Debouncer) Stop() {
	db.mu.Lock()
	defer db.mu.Unlock()

	if db.timer != nil {
		db.timer.Stop()
		db.timer = nil
	}
}
