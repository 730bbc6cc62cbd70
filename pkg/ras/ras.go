// Package ras defines the boundary to the Ranging Service client.
//
// The Ranging Service (RAS) is the GATT companion protocol of channel
// sounding: it tells the host whether the peer exposes ranging at all,
// carries the vendor-specific bootstrap payload between the two ranging
// HALs, and relays the peer's raw procedure data. This package holds the
// event payloads the RAS client delivers into the distance measurement
// manager and the codec for the vendor bootstrap payload; the GATT plumbing
// itself is out of scope.
package ras

import (
	"github.com/Neoteric-OS/android-packages-modules-Bluetooth/pkg/hal"
	"github.com/Neoteric-OS/android-packages-modules-Bluetooth/pkg/hci"
)

// DisconnectReason explains why a RAS session ended.
type DisconnectReason uint8

const (
	// DisconnectReasonUnknown is reported when the client has no better
	// information.
	DisconnectReasonUnknown DisconnectReason = iota

	// DisconnectReasonServerNotAvailable means the peer does not expose the
	// Ranging Service at all.
	DisconnectReasonServerNotAvailable

	// DisconnectReasonPeerTerminated means the peer tore the session down.
	DisconnectReasonPeerTerminated

	// DisconnectReasonConnectionLost means the underlying ACL connection
	// dropped.
	DisconnectReasonConnectionLost
)

// String returns the reason name.
func (r DisconnectReason) String() string {
	switch r {
	case DisconnectReasonServerNotAvailable:
		return "SERVER_NOT_AVAILABLE"
	case DisconnectReasonPeerTerminated:
		return "PEER_TERMINATED"
	case DisconnectReasonConnectionLost:
		return "CONNECTION_LOST"
	default:
		return "UNKNOWN"
	}
}

// ConnectedEvent is delivered when the RAS client has discovered and
// connected the peer's Ranging Service.
type ConnectedEvent struct {
	Address          hci.Address
	ConnectionHandle uint16

	// AttHandle is the ATT handle of the vendor data characteristic.
	AttHandle uint16

	// VendorData holds the peer's vendor-specific bootstrap
	// characteristics.
	VendorData []hal.VendorSpecificCharacteristic

	// ConnInterval is the current ACL connection interval in 1.25 ms units.
	ConnInterval uint16
}

// DisconnectedEvent is delivered when the RAS session for a peer ends.
type DisconnectedEvent struct {
	Address hci.Address
	Reason  DisconnectReason
}

// SessionEvents is implemented by the distance measurement manager and fed
// by the RAS client. Calls may originate on the client's goroutines.
type SessionEvents interface {
	HandleRasClientConnectedEvent(ev ConnectedEvent)
	HandleRasClientDisconnectedEvent(ev DisconnectedEvent)

	// HandleRemoteProcedureData relays one fragment of the peer's raw
	// procedure data.
	HandleRemoteProcedureData(address hci.Address, procedureCounter uint16, data []byte)
}
