package core

import (
	"context"
	"sync"
	"time"
)

type taskState int

const (
	taskPending taskState = iota
	taskFired
	taskCancelled
)

// Task is a cancellable delayed callback.
// The callback runs at most once, on its own goroutine. Once Cancel returns true it will never run.
type Task struct {
	mu    sync.Mutex
	timer *time.Timer
	state taskState
	done  chan struct{}
}

// After schedules fn to run once d has elapsed.
func After(d time.Duration, fn func()) *Task {
	t := &Task{done: make(chan struct{})}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.timer = time.AfterFunc(d, func() { t.fire(fn) })
	return t
}

func (t *Task) fire(fn func()) {
	t.mu.Lock()
	if t.state != taskPending {
		t.mu.Unlock()
		return
	}
	t.state = taskFired
	t.mu.Unlock()

	defer close(t.done)
	fn()
}

// Cancel stops the task. It reports false if the callback had already started.
func (t *Task) Cancel() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state != taskPending {
		return t.state == taskCancelled
	}
	t.state = taskCancelled
	t.timer.Stop()
	close(t.done)
	return true
}

// Done is closed once the callback has returned or the task was cancelled.
func (t *Task) Done() <-chan struct{} {
	return t.done
}

func (t *Task) Cancelled() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state == taskCancelled
}

// Wait blocks until the task is done or ctx expires.
func (t *Task) Wait(ctx context.Context) error {
	select {
	case <-t.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Sleep pauses for d or until ctx expires, whichever comes first.
func Sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
