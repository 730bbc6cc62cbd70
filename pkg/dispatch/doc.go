// Package dispatch provides the single serialization domain the distance
// measurement stack runs on.
//
// A Handler is a serial task queue backed by one goroutine: tasks posted to
// it execute one at a time, in order. External collaborators (HCI transport,
// RAS client, ranging HAL) deliver events on their own goroutines and hand
// off into the handler before touching any stack state, so the state machine
// itself needs no locking.
//
// An Alarm is a cancellable deferred task bound to a Handler. At most one
// task is in flight per alarm: scheduling while a task is pending replaces
// it, and Cancel guarantees a cancelled task never runs even if its timer
// already fired. Alarms take their notion of time from the Handler's Clock,
// so tests can drive a FakeClock instead of sleeping.
package dispatch
