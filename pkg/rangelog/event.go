package rangelog

import "time"

// Event is one structured record from the ranging stack.
// CBOR encoding uses integer keys for compactness.
type Event struct {
	// Timestamp when the event occurred (nanosecond precision).
	Timestamp time.Time `cbor:"1,keyasint"`

	// SessionID is the ranging session UUID, empty for events not tied to
	// a session (e.g. the local capability read).
	SessionID string `cbor:"2,keyasint,omitempty"`

	// Address is the remote device address.
	Address string `cbor:"3,keyasint,omitempty"`

	// ConnectionHandle is the ACL connection handle.
	ConnectionHandle uint16 `cbor:"4,keyasint,omitempty"`

	// Category classifies the event type.
	Category Category `cbor:"5,keyasint"`

	// Type-specific payload (exactly one is set).
	StateChange *StateChangeRecord `cbor:"6,keyasint,omitempty"`
	Command     *CommandRecord     `cbor:"7,keyasint,omitempty"`
	Measurement *MeasurementRecord `cbor:"8,keyasint,omitempty"`
	Error       *ErrorRecord       `cbor:"9,keyasint,omitempty"`
}

// Category classifies the event type.
type Category uint8

const (
	// CategoryState indicates a session state machine transition.
	CategoryState Category = 0
	// CategoryCommand indicates an HCI command outcome.
	CategoryCommand Category = 1
	// CategoryMeasurement indicates a distance result.
	CategoryMeasurement Category = 2
	// CategoryError indicates an error event.
	CategoryError Category = 3
)

// String returns the category name.
func (c Category) String() string {
	switch c {
	case CategoryState:
		return "STATE"
	case CategoryCommand:
		return "COMMAND"
	case CategoryMeasurement:
		return "MEASUREMENT"
	case CategoryError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// StateChangeRecord describes a session state transition.
type StateChangeRecord struct {
	OldState string `cbor:"1,keyasint"`
	NewState string `cbor:"2,keyasint"`

	// Reason is free-form: "ras disconnected", "retry budget exhausted"...
	Reason string `cbor:"3,keyasint,omitempty"`
}

// CommandRecord describes the outcome of one HCI command.
type CommandRecord struct {
	// Opcode is the command name.
	Opcode string `cbor:"1,keyasint"`

	// Status is the HCI status name from the terminating event.
	Status string `cbor:"2,keyasint"`

	// Retry is the zero-based retry number this command was sent as;
	// zero for first attempts.
	Retry int `cbor:"3,keyasint,omitempty"`
}

// MeasurementRecord describes a distance result delivered to the caller.
type MeasurementRecord struct {
	DistanceMeters  float64 `cbor:"1,keyasint"`
	ConfidenceLevel float64 `cbor:"2,keyasint,omitempty"`
}

// ErrorRecord describes an error event.
type ErrorRecord struct {
	// Message describes what failed.
	Message string `cbor:"1,keyasint"`

	// Context names where it failed ("procedure enable", "event routing").
	Context string `cbor:"2,keyasint,omitempty"`
}
