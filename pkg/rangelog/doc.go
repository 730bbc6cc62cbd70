// Package rangelog captures structured events from the distance measurement
// stack.
//
// Every noteworthy step of a ranging session (state machine transitions,
// HCI command outcomes, retries, measurement results, terminal errors) is
// reported as an Event to a Logger. Applications choose the sink:
//
//   - NoopLogger discards everything (the default).
//   - SlogAdapter forwards events to a log/slog logger for development.
//   - FileLogger appends CBOR-encoded events to a file for offline
//     analysis.
//   - MultiLogger fans out to several sinks at once.
//
// Events are correlated by the ranging session UUID and the remote device
// address, so a single log stream interleaving multiple concurrent sessions
// can be split per session afterwards.
package rangelog
