package fs

import (
	"sync"
	"time"

	"github.com/quillhq/inkwell/pkg/core"
)

// debouncer coalesces rapid event bursts per document ID. Editors often
// produce several writes per save; only the last one within the window
// is emitted.
type debouncer struct {
	delay time.Duration

	mu       sync.Mutex
	timers   map[string]*time.Timer
	stopped  bool
	inflight sync.WaitGroup
}

func newDebouncer(delay time.Duration) *debouncer {
	return &debouncer{
		delay:  delay,
		timers: make(map[string]*time.Timer),
	}
}

// add schedules an event. A newer event for the same document ID
// supersedes the pending one.
func (d *debouncer) add(event core.Event, emit func(core.Event)) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}

	key := event.ID
	if prev, ok := d.timers[key]; ok {
		if prev.Stop() {
			d.inflight.Done()
		}
	}

	d.inflight.Add(1)
	d.timers[key] = time.AfterFunc(d.delay, func() {
		defer d.inflight.Done()

		d.mu.Lock()
		delete(d.timers, key)
		stopped := d.stopped
		d.mu.Unlock()

		if stopped {
			return
		}
		emit(event)
	})
}

// stopAndWait rejects new events, cancels pending timers, and waits for
// in-flight emissions to finish (bounded by timeout).
func (d *debouncer) stopAndWait(timeout time.Duration) {
	d.mu.Lock()
	d.stopped = true
	for key, t := range d.timers {
		if t.Stop() {
			d.inflight.Done()
		}
		delete(d.timers, key)
	}
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.inflight.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(timeout):
	}
}
