// Package hal defines the boundary to the vendor ranging accelerator.
//
// The HAL consumes raw CS procedure data from both sides of a procedure and
// computes distance estimates; the algorithm itself lives behind this
// interface and is out of scope for the host stack. A session must be open
// for a connection before any procedure data is written, which is why the
// orchestration layer opens the HAL session before issuing the first CS
// command for a connection.
package hal

import "github.com/google/uuid"

// Version is the ranging HAL interface generation.
type Version uint8

const (
	// VersionUnknown means the HAL did not report a version.
	VersionUnknown Version = iota
	// Version1 HALs consume procedure data but carry no vendor-specific
	// GATT characteristics.
	Version1
	// Version2 HALs exchange vendor-specific characteristics over the
	// Ranging Service during session setup.
	Version2
)

// String returns the version name.
func (v Version) String() string {
	switch v {
	case Version1:
		return "V1"
	case Version2:
		return "V2"
	default:
		return "UNKNOWN"
	}
}

// VendorSpecificCharacteristic is an opaque vendor payload keyed by its GATT
// characteristic UUID, carried between the local HAL and the remote peer
// over the Ranging Service.
type VendorSpecificCharacteristic struct {
	CharacteristicUUID uuid.UUID
	Value              []byte
}

// DataSource tells the HAL which side of the procedure produced a blob of
// procedure data.
type DataSource uint8

const (
	// SourceLocal marks data produced by the local controller.
	SourceLocal DataSource = iota
	// SourceRemote marks data relayed from the peer over the Ranging
	// Service.
	SourceRemote
)

// ProcedureData is one fragment of raw CS procedure data.
type ProcedureData struct {
	ConnectionHandle uint16
	ProcedureCounter uint16
	Source           DataSource
	Data             []byte
}

// RangingResult is a distance estimate computed by the HAL.
type RangingResult struct {
	ConnectionHandle uint16

	// DistanceMeters is the estimated distance to the peer.
	DistanceMeters float64

	// ConfidenceLevel is in [0, 1]; negative means not reported.
	ConfidenceLevel float64
}

// Callback receives HAL session lifecycle events and results.
// Implementations must not block; calls may originate on HAL goroutines.
type Callback interface {
	// OnOpened reports a successfully opened session. vendorData holds the
	// local vendor characteristics to ship to the peer over the Ranging
	// Service (empty for V1 HALs).
	OnOpened(connectionHandle uint16, vendorData []VendorSpecificCharacteristic)

	// OnOpenFailed reports that the session could not be opened.
	OnOpenFailed(connectionHandle uint16)

	// OnResult reports a distance estimate for an open session.
	OnResult(result RangingResult)
}

// RangingHal is the vendor ranging accelerator.
type RangingHal interface {
	// IsBound reports whether a vendor implementation is present. When
	// false, channel sounding must not be attempted at all.
	IsBound() bool

	// Version returns the bound HAL's interface generation.
	Version() Version

	// RegisterCallback sets the callback sink. Later registration replaces
	// the former.
	RegisterCallback(cb Callback)

	// OpenSession opens a ranging session for a connection. The outcome
	// arrives via Callback.OnOpened or Callback.OnOpenFailed.
	OpenSession(connectionHandle, attHandle uint16, vendorData []VendorSpecificCharacteristic)

	// WriteProcedureData hands one fragment of raw procedure data to an
	// open session.
	WriteProcedureData(data ProcedureData)

	// CloseSession tears down the session for a connection. Safe to call
	// for connections without a session.
	CloseSession(connectionHandle uint16)
}
