package ranging

// State is a tracker's position in the CS negotiation.
// Transitions are linear; the only cycles are the bounded retry loops on
// config creation and procedure enable.
type State uint8

const (
	StateIdle State = iota
	StateWaitLocalCaps
	StateWaitRasConnected
	StateWaitRemoteCaps
	StateWaitDefaultSettings
	StateWaitConfigComplete
	StateWaitSecurityEnable
	StateWaitProcedureParams
	StateWaitProcedureEnable
	StateActive
	StateStopped
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "IDLE"
	case StateWaitLocalCaps:
		return "WAIT_LOCAL_CAPABILITIES"
	case StateWaitRasConnected:
		return "WAIT_RAS_CONNECTED"
	case StateWaitRemoteCaps:
		return "WAIT_REMOTE_CAPABILITIES"
	case StateWaitDefaultSettings:
		return "WAIT_DEFAULT_SETTINGS"
	case StateWaitConfigComplete:
		return "WAIT_CONFIG_COMPLETE"
	case StateWaitSecurityEnable:
		return "WAIT_SECURITY_ENABLE"
	case StateWaitProcedureParams:
		return "WAIT_PROCEDURE_PARAMETERS"
	case StateWaitProcedureEnable:
		return "WAIT_PROCEDURE_ENABLE"
	case StateActive:
		return "ACTIVE"
	case StateStopped:
		return "STOPPED"
	default:
		return "UNKNOWN"
	}
}
