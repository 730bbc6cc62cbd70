package ranging

// Reason is the terminal code delivered with OnDistanceMeasurementStopped.
type Reason uint8

const (
	// ReasonLocalRequest means the caller stopped the measurement.
	ReasonLocalRequest Reason = iota

	// ReasonInternalError covers HCI failures beyond the retry budget,
	// protocol desynchronization and unexpected mid-session disconnects.
	ReasonInternalError

	// ReasonFeatureNotSupportedLocal means the requested method cannot be
	// served by the local stack.
	ReasonFeatureNotSupportedLocal

	// ReasonFeatureNotSupportedRemote means the peer never established a
	// ranging-capable session.
	ReasonFeatureNotSupportedRemote
)

// String returns the reason name.
func (r Reason) String() string {
	switch r {
	case ReasonLocalRequest:
		return "LOCAL_REQUEST"
	case ReasonInternalError:
		return "INTERNAL_ERROR"
	case ReasonFeatureNotSupportedLocal:
		return "FEATURE_NOT_SUPPORTED_LOCAL"
	case ReasonFeatureNotSupportedRemote:
		return "FEATURE_NOT_SUPPORTED_REMOTE"
	default:
		return "UNKNOWN"
	}
}

// Method selects the distance measurement engine.
type Method uint8

const (
	// MethodAuto lets the stack pick the best available engine.
	MethodAuto Method = iota
	// MethodRSSI estimates distance from received signal strength.
	MethodRSSI
	// MethodCS uses channel sounding, the only method this package drives.
	MethodCS
)

// String returns the method name.
func (m Method) String() string {
	switch m {
	case MethodAuto:
		return "AUTO"
	case MethodRSSI:
		return "RSSI"
	case MethodCS:
		return "CS"
	default:
		return "UNKNOWN"
	}
}
