package hci

import "fmt"

// OpCode identifies an HCI command (OGF<<10 | OCF).
type OpCode uint16

// LE Channel Sounding command opcodes (Core 5.4, Vol 4, Part E, 7.8.130+).
const (
	OpLeCsReadLocalSupportedCapabilities  OpCode = 0x2089
	OpLeCsReadRemoteSupportedCapabilities OpCode = 0x208A
	OpLeCsSecurityEnable                  OpCode = 0x208C
	OpLeCsSetDefaultSettings              OpCode = 0x208D
	OpLeCsCreateConfig                    OpCode = 0x2090
	OpLeCsRemoveConfig                    OpCode = 0x2091
	OpLeCsSetProcedureParameters          OpCode = 0x2093
	OpLeCsProcedureEnable                 OpCode = 0x2094
)

// String returns the command name for known opcodes.
func (op OpCode) String() string {
	switch op {
	case OpLeCsReadLocalSupportedCapabilities:
		return "LE_CS_READ_LOCAL_SUPPORTED_CAPABILITIES"
	case OpLeCsReadRemoteSupportedCapabilities:
		return "LE_CS_READ_REMOTE_SUPPORTED_CAPABILITIES"
	case OpLeCsSecurityEnable:
		return "LE_CS_SECURITY_ENABLE"
	case OpLeCsSetDefaultSettings:
		return "LE_CS_SET_DEFAULT_SETTINGS"
	case OpLeCsCreateConfig:
		return "LE_CS_CREATE_CONFIG"
	case OpLeCsRemoveConfig:
		return "LE_CS_REMOVE_CONFIG"
	case OpLeCsSetProcedureParameters:
		return "LE_CS_SET_PROCEDURE_PARAMETERS"
	case OpLeCsProcedureEnable:
		return "LE_CS_PROCEDURE_ENABLE"
	default:
		return fmt.Sprintf("OPCODE(0x%04X)", uint16(op))
	}
}

// SubeventCode identifies an LE meta subevent.
type SubeventCode uint8

// LE Channel Sounding subevent codes.
const (
	SubeventCsReadRemoteSupportedCapabilitiesComplete SubeventCode = 0x2C
	SubeventCsSecurityEnableComplete                  SubeventCode = 0x2E
	SubeventCsConfigComplete                          SubeventCode = 0x2F
	SubeventCsProcedureEnableComplete                 SubeventCode = 0x30
	SubeventCsSubeventResult                          SubeventCode = 0x31
	SubeventCsSubeventResultContinue                  SubeventCode = 0x32
)

// String returns the subevent name for known codes.
func (c SubeventCode) String() string {
	switch c {
	case SubeventCsReadRemoteSupportedCapabilitiesComplete:
		return "LE_CS_READ_REMOTE_SUPPORTED_CAPABILITIES_COMPLETE"
	case SubeventCsSecurityEnableComplete:
		return "LE_CS_SECURITY_ENABLE_COMPLETE"
	case SubeventCsConfigComplete:
		return "LE_CS_CONFIG_COMPLETE"
	case SubeventCsProcedureEnableComplete:
		return "LE_CS_PROCEDURE_ENABLE_COMPLETE"
	case SubeventCsSubeventResult:
		return "LE_CS_SUBEVENT_RESULT"
	case SubeventCsSubeventResultContinue:
		return "LE_CS_SUBEVENT_RESULT_CONTINUE"
	default:
		return fmt.Sprintf("SUBEVENT(0x%02X)", uint8(c))
	}
}

// ErrorCode is an HCI error code as reported in Command Status, Command
// Complete and LE meta events.
type ErrorCode uint8

const (
	ErrorSuccess                     ErrorCode = 0x00
	ErrorUnknownConnectionIdentifier ErrorCode = 0x02
	ErrorHardwareFailure             ErrorCode = 0x03
	ErrorMemoryCapacityExceeded      ErrorCode = 0x07
	ErrorCommandDisallowed           ErrorCode = 0x0C
	ErrorUnsupportedFeature          ErrorCode = 0x11
	ErrorInvalidCommandParameters    ErrorCode = 0x12
	ErrorUnspecifiedError            ErrorCode = 0x1F
	ErrorLLProcedureCollision        ErrorCode = 0x23
)

// IsSuccess reports whether the code indicates success.
func (e ErrorCode) IsSuccess() bool { return e == ErrorSuccess }

// String returns the error name for known codes.
func (e ErrorCode) String() string {
	switch e {
	case ErrorSuccess:
		return "SUCCESS"
	case ErrorUnknownConnectionIdentifier:
		return "UNKNOWN_CONNECTION_IDENTIFIER"
	case ErrorHardwareFailure:
		return "HARDWARE_FAILURE"
	case ErrorMemoryCapacityExceeded:
		return "MEMORY_CAPACITY_EXCEEDED"
	case ErrorCommandDisallowed:
		return "COMMAND_DISALLOWED"
	case ErrorUnsupportedFeature:
		return "UNSUPPORTED_FEATURE"
	case ErrorInvalidCommandParameters:
		return "INVALID_COMMAND_PARAMETERS"
	case ErrorUnspecifiedError:
		return "UNSPECIFIED_ERROR"
	case ErrorLLProcedureCollision:
		return "LL_PROCEDURE_COLLISION"
	default:
		return fmt.Sprintf("ERROR(0x%02X)", uint8(e))
	}
}

// Role is the local role on the ACL connection.
type Role uint8

const (
	RoleCentral    Role = 0x00
	RolePeripheral Role = 0x01
)

// String returns the role name.
func (r Role) String() string {
	switch r {
	case RoleCentral:
		return "CENTRAL"
	case RolePeripheral:
		return "PERIPHERAL"
	default:
		return "UNKNOWN"
	}
}

// CsRole is the role a device plays inside a CS procedure.
type CsRole uint8

const (
	CsRoleInitiator CsRole = 0x00
	CsRoleReflector CsRole = 0x01
)

// String returns the CS role name.
func (r CsRole) String() string {
	switch r {
	case CsRoleInitiator:
		return "INITIATOR"
	case CsRoleReflector:
		return "REFLECTOR"
	default:
		return "UNKNOWN"
	}
}

// Enable is the direction field of the CS procedure enable command and its
// completion event.
type Enable uint8

const (
	Disabled Enable = 0x00
	Enabled  Enable = 0x01
)

// String returns the enable direction name.
func (e Enable) String() string {
	switch e {
	case Disabled:
		return "DISABLED"
	case Enabled:
		return "ENABLED"
	default:
		return "UNKNOWN"
	}
}
