package core

import (
	"sync"
	"time"
)

// Debouncer delivers only the last of a burst of values, once no new value arrived for a full window.
type Debouncer struct {
	mu      sync.Mutex
	window  time.Duration
	deliver func(string)

	seq     int
	task    *Task
	pending string
	hasPend bool
	stopped bool
}

func NewDebouncer(window time.Duration, deliver func(string)) *Debouncer {
	return &Debouncer{window: window, deliver: deliver}
}

// Push replaces the pending value and restarts the window.
func (d *Debouncer) Push(v string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}
	if d.task != nil {
		d.task.Cancel()
	}
	d.seq++
	seq := d.seq
	d.pending, d.hasPend = v, true
	d.task = After(d.window, func() { d.fire(seq) })
}

func (d *Debouncer) fire(seq int) {
	d.mu.Lock()
	if seq != d.seq || !d.hasPend || d.stopped {
		d.mu.Unlock()
		return
	}
	v := d.pending
	d.pending, d.hasPend, d.task = "", false, nil
	d.mu.Unlock()

	d.deliver(v)
}

// Flush delivers the pending value right away. It reports whether there was one.
func (d *Debouncer) Flush() bool {
	d.mu.Lock()
	if !d.hasPend || d.stopped {
		d.mu.Unlock()
		return false
	}
	if d.task != nil {
		d.task.Cancel()
	}
	d.seq++
	v := d.pending
	d.pending, d.hasPend, d.task = "", false, nil
	d.mu.Unlock()

	d.deliver(v)
	return true
}

// Discard drops the pending value without delivering it.
func (d *Debouncer) Discard() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.task != nil {
		d.task.Cancel()
	}
	d.seq++
	d.pending, d.hasPend, d.task = "", false, nil
}

// Stop discards the pending value; later pushes are ignored.
func (d *Debouncer) Stop() {
	d.Discard()
	d.mu.Lock()
	d.stopped = true
	d.mu.Unlock()
}
