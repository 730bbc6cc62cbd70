package hci

// Command is an HCI command submitted through a CommandChannel.
type Command interface {
	Opcode() OpCode
}

// LeCsReadLocalSupportedCapabilities reads the controller's CS capability
// set. Terminates with a Command Complete carrying LocalCapabilitiesComplete.
type LeCsReadLocalSupportedCapabilities struct{}

// Opcode implements Command.
func (LeCsReadLocalSupportedCapabilities) Opcode() OpCode {
	return OpLeCsReadLocalSupportedCapabilities
}

// LeCsReadRemoteSupportedCapabilities starts the remote CS capability
// exchange. Terminates with a Command Status; the result arrives later as a
// RemoteCapabilitiesComplete subevent.
type LeCsReadRemoteSupportedCapabilities struct {
	ConnectionHandle uint16
}

// Opcode implements Command.
func (LeCsReadRemoteSupportedCapabilities) Opcode() OpCode {
	return OpLeCsReadRemoteSupportedCapabilities
}

// LeCsSetDefaultSettings writes the default CS settings for a connection.
// Terminates with a Command Complete carrying DefaultSettingsComplete.
type LeCsSetDefaultSettings struct {
	ConnectionHandle uint16

	// RoleEnable holds CsRoleSupport* bits for the roles enabled on this
	// connection.
	RoleEnable uint8

	CsSyncAntennaSelection uint8
	MaxTxPower             int8
}

// Opcode implements Command.
func (LeCsSetDefaultSettings) Opcode() OpCode { return OpLeCsSetDefaultSettings }

// LeCsCreateConfig creates a CS config on the connection. Terminates with a
// Command Status; the result arrives later as a ConfigComplete subevent.
type LeCsCreateConfig struct {
	ConnectionHandle   uint16
	ConfigID           uint8
	CreateContext      uint8 // 0x01: local and remote controller
	MainModeType       uint8
	SubModeType        uint8
	MinMainModeSteps   uint8
	MaxMainModeSteps   uint8
	MainModeRepetition uint8
	Mode0Steps         uint8
	Role               CsRole
	RttType            uint8
	CsSyncPhy          uint8

	// ChannelMap marks the allowed CS channels, least significant bit of
	// ChannelMap[0] being channel 0.
	ChannelMap [10]byte

	ChannelMapRepetition uint8
	ChannelSelectionType uint8
	Ch3cShape            uint8
	Ch3cJump             uint8
}

// Opcode implements Command.
func (LeCsCreateConfig) Opcode() OpCode { return OpLeCsCreateConfig }

// LeCsRemoveConfig removes a CS config. Terminates with a Command Status.
type LeCsRemoveConfig struct {
	ConnectionHandle uint16
	ConfigID         uint8
}

// Opcode implements Command.
func (LeCsRemoveConfig) Opcode() OpCode { return OpLeCsRemoveConfig }

// LeCsSecurityEnable starts the CS security start procedure. Terminates with
// a Command Status; the result arrives later as a SecurityEnableComplete
// subevent.
type LeCsSecurityEnable struct {
	ConnectionHandle uint16
}

// Opcode implements Command.
func (LeCsSecurityEnable) Opcode() OpCode { return OpLeCsSecurityEnable }

// LeCsSetProcedureParameters sets the procedure schedule for a config.
// Terminates with a Command Complete carrying ProcedureParametersComplete.
type LeCsSetProcedureParameters struct {
	ConnectionHandle uint16
	ConfigID         uint8

	// MaxProcedureLen is in 0.625 ms units.
	MaxProcedureLen uint16

	// MinProcedureInterval and MaxProcedureInterval are in ACL connection
	// interval units.
	MinProcedureInterval uint16
	MaxProcedureInterval uint16

	// MaxProcedureCount of zero lets procedures repeat until disabled.
	MaxProcedureCount uint16

	// MinSubeventLen and MaxSubeventLen are in microseconds.
	MinSubeventLen uint32
	MaxSubeventLen uint32

	ToneAntennaConfigSelection uint8
	Phy                        uint8
	TxPowerDelta               int8
	PreferredPeerAntenna       uint8
	SnrControlInitiator        uint8
	SnrControlReflector        uint8
}

// Opcode implements Command.
func (LeCsSetProcedureParameters) Opcode() OpCode { return OpLeCsSetProcedureParameters }

// LeCsProcedureEnable enables or disables CS procedures for a config.
// Terminates with a Command Status; the result arrives later as a
// ProcedureEnableComplete subevent.
type LeCsProcedureEnable struct {
	ConnectionHandle uint16
	ConfigID         uint8
	Enable           Enable
}

// Opcode implements Command.
func (LeCsProcedureEnable) Opcode() OpCode { return OpLeCsProcedureEnable }
