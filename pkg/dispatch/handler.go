package dispatch

import "sync"

// Handler is a serial task queue. All tasks posted to a Handler execute on
// one dedicated goroutine in posting order.
type Handler struct {
	tasks chan func()
	quit  chan struct{}
	done  chan struct{}
	once  sync.Once
	clock Clock
}

// New creates a Handler using the system clock and starts its goroutine.
func New() *Handler {
	return NewWithClock(SystemClock())
}

// NewWithClock creates a Handler whose alarms use the given clock.
func NewWithClock(clock Clock) *Handler {
	h := &Handler{
		tasks: make(chan func(), 128),
		quit:  make(chan struct{}),
		done:  make(chan struct{}),
		clock: clock,
	}
	go h.loop()
	return h
}

// Clock returns the clock alarms on this handler use.
func (h *Handler) Clock() Clock { return h.clock }

// Post enqueues task for execution on the handler goroutine.
// Posting to a closed handler is a no-op.
func (h *Handler) Post(task func()) {
	select {
	case <-h.quit:
		return
	default:
	}
	select {
	case h.tasks <- task:
	case <-h.quit:
	}
}

// Sync blocks until every task posted before the call has executed.
// Returns immediately on a closed handler.
func (h *Handler) Sync() {
	barrier := make(chan struct{})
	h.Post(func() { close(barrier) })
	select {
	case <-barrier:
	case <-h.done:
	}
}

// Close stops the handler goroutine. Tasks still queued are discarded;
// tasks posted afterwards are dropped. Close is idempotent and returns once
// the goroutine has exited.
func (h *Handler) Close() {
	h.once.Do(func() { close(h.quit) })
	<-h.done
}

func (h *Handler) loop() {
	defer close(h.done)
	for {
		select {
		case <-h.quit:
			return
		case task := <-h.tasks:
			task()
		}
	}
}
