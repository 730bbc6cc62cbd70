package hci

// CommandResult is the controller response that terminates a command: either
// a Command Status event (Complete is nil) or a Command Complete event
// (Complete holds the opcode-specific return parameters).
type CommandResult struct {
	Opcode OpCode
	Status ErrorCode

	// Complete is the typed Command Complete payload:
	// *LocalCapabilitiesComplete, *DefaultSettingsComplete or
	// *ProcedureParametersComplete depending on the opcode. Nil for commands
	// that terminate with Command Status.
	Complete any
}

// LocalCapabilitiesComplete is the return payload of
// LE_CS_READ_LOCAL_SUPPORTED_CAPABILITIES.
type LocalCapabilitiesComplete struct {
	Status       ErrorCode
	Capabilities CsCapabilities
}

// DefaultSettingsComplete is the return payload of
// LE_CS_SET_DEFAULT_SETTINGS.
type DefaultSettingsComplete struct {
	Status           ErrorCode
	ConnectionHandle uint16
}

// ProcedureParametersComplete is the return payload of
// LE_CS_SET_PROCEDURE_PARAMETERS.
type ProcedureParametersComplete struct {
	Status           ErrorCode
	ConnectionHandle uint16
}

// LeEvent is a decoded LE meta subevent.
type LeEvent interface {
	Subevent() SubeventCode
}

// RemoteCapabilitiesComplete reports the outcome of the remote CS capability
// exchange.
type RemoteCapabilitiesComplete struct {
	Status           ErrorCode
	ConnectionHandle uint16
	Capabilities     CsCapabilities
}

// Subevent implements LeEvent.
func (RemoteCapabilitiesComplete) Subevent() SubeventCode {
	return SubeventCsReadRemoteSupportedCapabilitiesComplete
}

// SecurityEnableComplete reports the outcome of the CS security start
// procedure.
type SecurityEnableComplete struct {
	Status           ErrorCode
	ConnectionHandle uint16
}

// Subevent implements LeEvent.
func (SecurityEnableComplete) Subevent() SubeventCode {
	return SubeventCsSecurityEnableComplete
}

// CS config actions (ConfigComplete.Action).
const (
	CsConfigActionRemoved uint8 = 0x00
	CsConfigActionCreated uint8 = 0x01
)

// ConfigComplete reports the outcome of config creation or removal.
type ConfigComplete struct {
	Status           ErrorCode
	ConnectionHandle uint16
	ConfigID         uint8
	Action           uint8

	MainModeType         uint8
	SubModeType          uint8
	MinMainModeSteps     uint8
	MaxMainModeSteps     uint8
	MainModeRepetition   uint8
	Mode0Steps           uint8
	Role                 CsRole
	RttType              uint8
	CsSyncPhy            uint8
	ChannelMap           [10]byte
	ChannelMapRepetition uint8
	ChannelSelectionType uint8
	Ch3cShape            uint8
	Ch3cJump             uint8
	TIp1Time             uint8
	TIp2Time             uint8
	TFcsTime             uint8
	TPmTime              uint8
}

// Subevent implements LeEvent.
func (ConfigComplete) Subevent() SubeventCode { return SubeventCsConfigComplete }

// ProcedureEnableComplete reports the outcome of procedure enable/disable.
// State echoes the direction the controller actually applied; a mismatch
// with the requested direction means the two sides have desynchronized.
type ProcedureEnableComplete struct {
	Status           ErrorCode
	ConnectionHandle uint16
	ConfigID         uint8
	State            Enable

	ToneAntennaConfigSelection uint8
	SelectedTxPower            int8
	SubeventLen                uint32
	SubeventsPerEvent          uint8
	SubeventInterval           uint16
	EventInterval              uint16
	ProcedureInterval          uint16
	ProcedureCount             uint16
	MaxProcedureLen            uint16
}

// Subevent implements LeEvent.
func (ProcedureEnableComplete) Subevent() SubeventCode {
	return SubeventCsProcedureEnableComplete
}

// SubeventResult carries raw CS step data for one procedure subevent.
// Continuation fragments set Continuation; the orchestration layer forwards
// the data opaquely to the ranging HAL.
type SubeventResult struct {
	ConnectionHandle uint16
	ConfigID         uint8
	ProcedureCounter uint16
	ProcedureDone    bool
	Continuation     bool
	Data             []byte
}

// Subevent implements LeEvent.
func (e SubeventResult) Subevent() SubeventCode {
	if e.Continuation {
		return SubeventCsSubeventResultContinue
	}
	return SubeventCsSubeventResult
}
