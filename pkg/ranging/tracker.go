package ranging

import (
	"time"

	"github.com/google/uuid"

	"github.com/Neoteric-OS/android-packages-modules-Bluetooth/pkg/dispatch"
	"github.com/Neoteric-OS/android-packages-modules-Bluetooth/pkg/hal"
	"github.com/Neoteric-OS/android-packages-modules-Bluetooth/pkg/hci"
)

// Retry budgets. Counters are zero-based and compared with <= so each
// command gets the maximum plus one total attempts.
const (
	maxCreateConfigRetries    = 3
	maxProcedureEnableRetries = 3
)

// tracker is one channel sounding session. All fields are confined to the
// manager's handler goroutine.
type tracker struct {
	sessionID        uuid.UUID
	address          hci.Address
	connectionHandle uint16
	role             hci.Role
	interval         time.Duration
	method           Method

	state    State
	configID uint8

	// attHandle and connInterval arrive with the RAS connected event.
	// connInterval is in 1.25 ms units.
	attHandle    uint16
	connInterval uint16

	// remoteCaps is nil until the remote capability read completes. A RAS
	// disconnect before it is set means the peer does not support ranging.
	remoteCaps *hci.CsCapabilities

	// localVendorData is the HAL's bootstrap payload for the peer, held
	// until the RAS client ships it.
	localVendorData []hal.VendorSpecificCharacteristic

	createConfigRetries    int
	procedureEnableRetries int

	// retryAlarm gates procedure enable resends on the measurement
	// interval. Re-arming replaces the pending task.
	retryAlarm *dispatch.Alarm

	terminalSent bool
}

func newTracker(handler *dispatch.Handler, address hci.Address, connectionHandle uint16,
	role hci.Role, interval time.Duration, method Method) *tracker {
	return &tracker{
		sessionID:        uuid.New(),
		address:          address,
		connectionHandle: connectionHandle,
		role:             role,
		interval:         interval,
		method:           method,
		state:            StateIdle,
		retryAlarm:       dispatch.NewAlarm(handler),
	}
}

// csRole derives the CS role from the ACL role: the central initiates, the
// peripheral reflects.
func (t *tracker) csRole() hci.CsRole {
	if t.role == hci.RoleCentral {
		return hci.CsRoleInitiator
	}
	return hci.CsRoleReflector
}

// minProcedureInterval converts the requested wall-clock interval into ACL
// connection interval units so the procedure cadence matches the caller's
// request regardless of the negotiated connection interval.
func (t *tracker) minProcedureInterval() uint16 {
	if t.connInterval == 0 {
		return 1
	}
	ms := float64(t.interval) / float64(time.Millisecond)
	units := ms / (float64(t.connInterval) * 1.25)
	v := uint16(units + 0.5)
	if v == 0 {
		v = 1
	}
	return v
}
