package ranging

import "github.com/Neoteric-OS/android-packages-modules-Bluetooth/pkg/hci"

// Result is one distance estimate for an active measurement.
type Result struct {
	Address hci.Address
	Method  Method

	// DistanceMeters is the estimated distance to the peer.
	DistanceMeters float64

	// ConfidenceLevel is in [0, 1]; negative means not reported.
	ConfidenceLevel float64
}

// Callbacks is the caller-facing sink for measurement events. Exactly one
// OnDistanceMeasurementStopped fires per accepted Start, never zero, never
// more. Calls arrive on the manager's handler goroutine and must not block.
type Callbacks interface {
	// OnDistanceMeasurementStarted fires once when the negotiation
	// completes and procedures are running.
	OnDistanceMeasurementStarted(address hci.Address, method Method)

	// OnDistanceMeasurementResult delivers a distance estimate.
	OnDistanceMeasurementResult(result Result)

	// OnDistanceMeasurementStopped is the terminal event for a
	// measurement. ReasonLocalRequest marks a clean caller stop.
	OnDistanceMeasurementStopped(address hci.Address, reason Reason, method Method)
}
