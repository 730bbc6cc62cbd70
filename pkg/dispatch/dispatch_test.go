package dispatch

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestHandlerExecutesInOrder(t *testing.T) {
	h := New()
	defer h.Close()

	var got []int
	for i := 0; i < 100; i++ {
		i := i
		h.Post(func() { got = append(got, i) })
	}
	h.Sync()

	if len(got) != 100 {
		t.Fatalf("executed %d tasks, want 100", len(got))
	}
	for i, v := range got {
		if v != i {
			t.Fatalf("task %d executed out of order (got %d)", i, v)
		}
	}
}

func TestHandlerPostAfterClose(t *testing.T) {
	h := New()
	h.Close()

	var ran atomic.Bool
	h.Post(func() { ran.Store(true) })
	h.Sync() // must not block on a closed handler

	if ran.Load() {
		t.Error("task ran after Close")
	}
}

func TestHandlerCloseIdempotent(t *testing.T) {
	h := New()
	h.Close()
	h.Close()
}

func TestFakeClockAdvance(t *testing.T) {
	c := NewFakeClock()

	var fired []string
	c.AfterFunc(30*time.Millisecond, func() { fired = append(fired, "c") })
	c.AfterFunc(10*time.Millisecond, func() { fired = append(fired, "a") })
	c.AfterFunc(20*time.Millisecond, func() { fired = append(fired, "b") })

	c.Advance(5 * time.Millisecond)
	if len(fired) != 0 {
		t.Fatalf("fired %v before any deadline", fired)
	}

	// Crossing two deadlines at once fires in deadline order.
	c.Advance(20 * time.Millisecond)
	if len(fired) != 2 || fired[0] != "a" || fired[1] != "b" {
		t.Fatalf("fired = %v, want [a b]", fired)
	}

	c.Advance(100 * time.Millisecond)
	if len(fired) != 3 || fired[2] != "c" {
		t.Fatalf("fired = %v, want [a b c]", fired)
	}
	if c.PendingTimers() != 0 {
		t.Errorf("PendingTimers = %d, want 0", c.PendingTimers())
	}
}

func TestFakeClockStop(t *testing.T) {
	c := NewFakeClock()

	var fired bool
	timer := c.AfterFunc(10*time.Millisecond, func() { fired = true })

	if !timer.Stop() {
		t.Fatal("Stop returned false for a pending timer")
	}
	if timer.Stop() {
		t.Error("second Stop returned true")
	}

	c.Advance(time.Second)
	if fired {
		t.Error("stopped timer fired")
	}
}

func TestAlarmFiresOnHandler(t *testing.T) {
	clock := NewFakeClock()
	h := NewWithClock(clock)
	defer h.Close()

	alarm := NewAlarm(h)

	var fired atomic.Int32
	alarm.Schedule(200*time.Millisecond, func() { fired.Add(1) })

	clock.Advance(199 * time.Millisecond)
	h.Sync()
	if fired.Load() != 0 {
		t.Fatal("alarm fired before its deadline")
	}

	clock.Advance(time.Millisecond)
	h.Sync()
	if fired.Load() != 1 {
		t.Fatalf("alarm fired %d times, want 1", fired.Load())
	}
	if alarm.Scheduled() {
		t.Error("alarm still scheduled after firing")
	}
}

func TestAlarmRescheduleReplaces(t *testing.T) {
	clock := NewFakeClock()
	h := NewWithClock(clock)
	defer h.Close()

	alarm := NewAlarm(h)

	var first, second atomic.Int32
	alarm.Schedule(100*time.Millisecond, func() { first.Add(1) })
	alarm.Schedule(300*time.Millisecond, func() { second.Add(1) })

	// The replaced task must not fire at its original deadline.
	clock.Advance(150 * time.Millisecond)
	h.Sync()
	if first.Load() != 0 {
		t.Fatal("replaced alarm task fired")
	}

	clock.Advance(150 * time.Millisecond)
	h.Sync()
	if second.Load() != 1 {
		t.Fatalf("replacement task fired %d times, want 1", second.Load())
	}
}

func TestAlarmCancel(t *testing.T) {
	clock := NewFakeClock()
	h := NewWithClock(clock)
	defer h.Close()

	alarm := NewAlarm(h)

	var fired atomic.Int32
	alarm.Schedule(50*time.Millisecond, func() { fired.Add(1) })
	alarm.Cancel()

	clock.Advance(time.Second)
	h.Sync()
	if fired.Load() != 0 {
		t.Error("cancelled alarm fired")
	}
	if alarm.Scheduled() {
		t.Error("cancelled alarm reports scheduled")
	}
}

func TestAlarmCancelAfterTimerFired(t *testing.T) {
	clock := NewFakeClock()
	h := NewWithClock(clock)
	defer h.Close()

	alarm := NewAlarm(h)

	var fired atomic.Int32
	// Post a blocker so the alarm task sits in the handler queue while we
	// cancel from outside.
	gate := make(chan struct{})
	h.Post(func() { <-gate })

	alarm.Schedule(10*time.Millisecond, func() { fired.Add(1) })
	clock.Advance(20 * time.Millisecond) // timer fires, task queued behind blocker
	alarm.Cancel()
	close(gate)

	h.Sync()
	if fired.Load() != 0 {
		t.Error("task ran despite Cancel after timer fire")
	}
}
