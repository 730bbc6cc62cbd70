package ranging

import "github.com/Neoteric-OS/android-packages-modules-Bluetooth/pkg/hci"

// Default CS negotiation parameters. The controller may tighten these in
// the config complete event; the orchestration does not renegotiate.
const (
	defaultConfigID             uint8 = 0x00
	createContextLocalAndRemote uint8 = 0x01

	// Mode 2 main steps (phase measurement) with mode 0 calibration steps.
	defaultMainModeType       uint8 = 0x02
	defaultSubModeType        uint8 = 0xFF
	defaultMinMainModeSteps   uint8 = 0x02
	defaultMaxMainModeSteps   uint8 = 0x0A
	defaultMainModeRepetition uint8 = 0x00
	defaultMode0Steps         uint8 = 0x03

	defaultRttType              uint8 = 0x00 // coarse, access address only
	defaultCsSyncPhy            uint8 = 0x01 // LE 1M
	defaultChannelMapRepetition uint8 = 0x01
	defaultChannelSelectionType uint8 = 0x00
	defaultCh3cShape            uint8 = 0x00
	defaultCh3cJump             uint8 = 0x00

	defaultCsSyncAntennaSelection uint8 = 0x01
	defaultMaxTxPower             int8  = 0x0A

	// Procedure schedule bounds. Length is in 0.625 ms units; subevent
	// lengths are in microseconds. A procedure count of zero repeats until
	// disabled.
	defaultMaxProcedureLen   uint16 = 0x2710
	defaultMaxProcedureCount uint16 = 0x0000
	defaultMinSubeventLen    uint32 = 0x0004E2
	defaultMaxSubeventLen    uint32 = 0x003E80

	defaultToneAntennaConfigSelection uint8 = 0x00
	defaultPreferredPeerAntenna       uint8 = 0x01
)

// defaultChannelMap allows every CS channel except the guard channels 0, 1,
// 23, 24, 25, 77 and 78 (Core 5.4, Vol 6, Part H, 4.1.2).
var defaultChannelMap = [10]byte{
	0xFC, 0xFF, 0x7F, 0xFC, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0x1F,
}

func (t *tracker) createConfigCommand() hci.LeCsCreateConfig {
	return hci.LeCsCreateConfig{
		ConnectionHandle:     t.connectionHandle,
		ConfigID:             t.configID,
		CreateContext:        createContextLocalAndRemote,
		MainModeType:         defaultMainModeType,
		SubModeType:          defaultSubModeType,
		MinMainModeSteps:     defaultMinMainModeSteps,
		MaxMainModeSteps:     defaultMaxMainModeSteps,
		MainModeRepetition:   defaultMainModeRepetition,
		Mode0Steps:           defaultMode0Steps,
		Role:                 t.csRole(),
		RttType:              defaultRttType,
		CsSyncPhy:            defaultCsSyncPhy,
		ChannelMap:           defaultChannelMap,
		ChannelMapRepetition: defaultChannelMapRepetition,
		ChannelSelectionType: defaultChannelSelectionType,
		Ch3cShape:            defaultCh3cShape,
		Ch3cJump:             defaultCh3cJump,
	}
}

func (t *tracker) procedureParametersCommand() hci.LeCsSetProcedureParameters {
	interval := t.minProcedureInterval()
	return hci.LeCsSetProcedureParameters{
		ConnectionHandle:           t.connectionHandle,
		ConfigID:                   t.configID,
		MaxProcedureLen:            defaultMaxProcedureLen,
		MinProcedureInterval:       interval,
		MaxProcedureInterval:       interval,
		MaxProcedureCount:          defaultMaxProcedureCount,
		MinSubeventLen:             defaultMinSubeventLen,
		MaxSubeventLen:             defaultMaxSubeventLen,
		ToneAntennaConfigSelection: defaultToneAntennaConfigSelection,
		Phy:                        defaultCsSyncPhy,
		TxPowerDelta:               0,
		PreferredPeerAntenna:       defaultPreferredPeerAntenna,
	}
}
