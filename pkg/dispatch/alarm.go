package dispatch

import (
	"sync"
	"time"
)

// Alarm schedules a single deferred task onto a Handler. Scheduling while a
// task is pending replaces the pending one; tasks are never stacked. After
// Cancel returns, the cancelled task will not run even if its timer already
// fired and the task is sitting in the handler queue.
type Alarm struct {
	handler *Handler

	mu    sync.Mutex
	timer Timer
	gen   uint64
}

// NewAlarm creates an alarm bound to the handler.
func NewAlarm(handler *Handler) *Alarm {
	return &Alarm{handler: handler}
}

// Schedule arranges for task to run on the alarm's handler once d has
// elapsed, replacing any pending task.
func (a *Alarm) Schedule(d time.Duration, task func()) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.timer != nil {
		a.timer.Stop()
	}
	a.gen++
	gen := a.gen

	a.timer = a.handler.clock.AfterFunc(d, func() {
		a.handler.Post(func() {
			a.mu.Lock()
			if a.gen != gen {
				a.mu.Unlock()
				return
			}
			a.timer = nil
			a.mu.Unlock()
			task()
		})
	})
}

// Cancel drops the pending task, if any.
func (a *Alarm) Cancel() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.gen++
	if a.timer != nil {
		a.timer.Stop()
		a.timer = nil
	}
}

// Scheduled reports whether a task is pending.
func (a *Alarm) Scheduled() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.timer != nil
}
