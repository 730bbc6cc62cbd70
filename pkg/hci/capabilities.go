package hci

// CS role support bits (CsCapabilities.RolesSupported).
const (
	CsRoleSupportInitiator uint8 = 1 << 0
	CsRoleSupportReflector uint8 = 1 << 1
)

// CS optional sub-feature bits (CsCapabilities.SubfeaturesSupported).
const (
	CsSubfeatureNoFrequencyActuationError uint16 = 1 << 0
	CsSubfeatureChannelSelectionAlgorithm uint16 = 1 << 1
	CsSubfeaturePhaseBasedRanging         uint16 = 1 << 2
)

// CsCapabilities is the capability record returned by the local and remote
// supported-capability reads. The set is immutable once read; bitmask fields
// use the wire encoding of the corresponding event.
type CsCapabilities struct {
	NumConfigSupported                uint8
	MaxConsecutiveProceduresSupported uint16
	NumAntennasSupported              uint8
	MaxAntennaPathsSupported          uint8

	// RolesSupported holds CsRoleSupport* bits.
	RolesSupported uint8

	// ModesSupported holds the optional CS modes bitmask.
	ModesSupported uint8

	// RttCapability and the rtt_*_n fields describe round-trip timing
	// precision support.
	RttCapability     uint8
	RttAaOnlyN        uint8
	RttSoundingN      uint8
	RttRandomPayloadN uint8

	NadmSoundingCapability uint16
	NadmRandomCapability   uint16

	CsSyncPhysSupported uint8

	// SubfeaturesSupported holds CsSubfeature* bits.
	SubfeaturesSupported uint16

	// Supported timing value sets (bit N set means timing value N is
	// supported).
	TIp1TimesSupported uint16
	TIp2TimesSupported uint16
	TFcsTimesSupported uint16
	TPmTimesSupported  uint16

	TSwTimeSupported uint8
	TxSnrCapability  uint8
}

// SupportsRole reports whether the capability set allows the given CS role.
func (c *CsCapabilities) SupportsRole(role CsRole) bool {
	switch role {
	case CsRoleInitiator:
		return c.RolesSupported&CsRoleSupportInitiator != 0
	case CsRoleReflector:
		return c.RolesSupported&CsRoleSupportReflector != 0
	default:
		return false
	}
}
