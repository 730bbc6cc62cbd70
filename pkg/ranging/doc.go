// Package ranging orchestrates BLE channel sounding distance measurement.
//
// The Manager owns one tracker per remote address. A tracker drives the
// strictly ordered CS negotiation over the HCI command channel: local
// capability read, Ranging Service connect, HAL session open, remote
// capability read, default settings, config creation, security start,
// procedure parameters and finally procedure enable. Once enabled the
// session stays active until the caller stops it, the peer disconnects or a
// fatal error occurs; distance results flow from the ranging HAL to the
// registered callback sink.
//
// All state lives on a single dispatch.Handler. Public entry points and
// collaborator callbacks hand off into it, so trackers need no locking.
package ranging
