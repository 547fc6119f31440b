package watcher

import (
	"sync"
	"time"
)

// Debouncer coalesces rapid changes to the same path into a single
// batch, flushed after a quiet window or when the batch fills up.
type Debouncer struct {
	window   time.Duration
	maxBatch int
	changes  map[string]Change
	mu       sync.Mutex
	timer    *time.Timer
	onFlush  func([]Change)
	stopped  bool
}

func NewDebouncer(window time.Duration, maxBatch int, onFlush func([]Change)) *Debouncer {
	return &Debouncer{
		window:   window,
		maxBatch: maxBatch,
		changes:  make(map[string]Change),
		onFlush:  onFlush,
	}
}

func (d *Debouncer) Add(change Change) {
	d.mu.Lock()

	if d.stopped {
		d.mu.Unlock()
		return
	}

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}

	d.changes[change.Path] = change

	if len(d.changes) >= d.maxBatch {
		d.flushLocked()
		return
	}

	d.timer = time.AfterFunc(d.window, func() {
		d.mu.Lock()
		if !d.stopped {
			d.flushLocked()
		} else {
			d.mu.Unlock()
		}
	})

	d.mu.Unlock()
}

// flushLocked drains the pending batch and releases the mutex before
// calling onFlush, so subscribers may add new changes from the
// callback.
func (d *Debouncer) flushLocked() {
	changes := make([]Change, 0, len(d.changes))
	for _, change := range d.changes {
		changes = append(changes, change)
	}

	d.changes = make(map[string]Change)

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}

	d.mu.Unlock()

	if len(changes) > 0 && d.onFlush != nil {
		d.onFlush(changes)
	}
}

func (d *Debouncer) Stop() {
	d.mu.Lock()

	if d.stopped {
		d.mu.Unlock()
		return
	}

	d.stopped = true

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}

	if len(d.changes) > 0 {
		d.flushLocked()
	} else {
		d.mu.Unlock()
	}
}
