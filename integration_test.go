package bluetooth_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Neoteric-OS/android-packages-modules-Bluetooth/pkg/config"
	"github.com/Neoteric-OS/android-packages-modules-Bluetooth/pkg/hal"
	"github.com/Neoteric-OS/android-packages-modules-Bluetooth/pkg/hci"
	"github.com/Neoteric-OS/android-packages-modules-Bluetooth/pkg/hci/hcifake"
	"github.com/Neoteric-OS/android-packages-modules-Bluetooth/pkg/rangelog"
	"github.com/Neoteric-OS/android-packages-modules-Bluetooth/pkg/ranging"
	"github.com/Neoteric-OS/android-packages-modules-Bluetooth/pkg/ras"
)

var e2eCaps = hci.CsCapabilities{
	NumConfigSupported:  4,
	RolesSupported:      hci.CsRoleSupportInitiator | hci.CsRoleSupportReflector,
	ModesSupported:      0x07,
	CsSyncPhysSupported: 0x01,
}

// e2eController answers every command like a well-behaved CS controller.
type e2eController struct {
	ch   *hcifake.Channel
	done chan struct{}
}

func startE2EController(ch *hcifake.Channel) *e2eController {
	c := &e2eController{ch: ch, done: make(chan struct{})}
	go c.run()
	return c
}

func (c *e2eController) Close() { close(c.done) }

func (c *e2eController) run() {
	for {
		select {
		case <-c.done:
			return
		default:
		}
		cmd, err := c.ch.NextCommand(100 * time.Millisecond)
		if err != nil {
			continue
		}
		c.respond(cmd)
	}
}

func (c *e2eController) respond(cmd hci.Command) {
	switch cc := cmd.(type) {
	case hci.LeCsReadLocalSupportedCapabilities:
		c.ch.IncomingCommandComplete(cc.Opcode(), hci.ErrorSuccess,
			&hci.LocalCapabilitiesComplete{Status: hci.ErrorSuccess, Capabilities: e2eCaps})
	case hci.LeCsReadRemoteSupportedCapabilities:
		c.ch.IncomingCommandStatus(cc.Opcode(), hci.ErrorSuccess)
		c.ch.IncomingLeMetaEvent(hci.RemoteCapabilitiesComplete{
			Status: hci.ErrorSuccess, ConnectionHandle: cc.ConnectionHandle, Capabilities: e2eCaps})
	case hci.LeCsSetDefaultSettings:
		c.ch.IncomingCommandComplete(cc.Opcode(), hci.ErrorSuccess,
			&hci.DefaultSettingsComplete{Status: hci.ErrorSuccess, ConnectionHandle: cc.ConnectionHandle})
	case hci.LeCsCreateConfig:
		c.ch.IncomingCommandStatus(cc.Opcode(), hci.ErrorSuccess)
		c.ch.IncomingLeMetaEvent(hci.ConfigComplete{
			Status: hci.ErrorSuccess, ConnectionHandle: cc.ConnectionHandle,
			ConfigID: cc.ConfigID, Action: hci.CsConfigActionCreated})
	case hci.LeCsSecurityEnable:
		c.ch.IncomingCommandStatus(cc.Opcode(), hci.ErrorSuccess)
		c.ch.IncomingLeMetaEvent(hci.SecurityEnableComplete{
			Status: hci.ErrorSuccess, ConnectionHandle: cc.ConnectionHandle})
	case hci.LeCsSetProcedureParameters:
		c.ch.IncomingCommandComplete(cc.Opcode(), hci.ErrorSuccess,
			&hci.ProcedureParametersComplete{Status: hci.ErrorSuccess, ConnectionHandle: cc.ConnectionHandle})
	case hci.LeCsProcedureEnable:
		c.ch.IncomingCommandStatus(cc.Opcode(), hci.ErrorSuccess)
		c.ch.IncomingLeMetaEvent(hci.ProcedureEnableComplete{
			Status: hci.ErrorSuccess, ConnectionHandle: cc.ConnectionHandle,
			ConfigID: cc.ConfigID, State: cc.Enable})
	case hci.LeCsRemoveConfig:
		c.ch.IncomingCommandStatus(cc.Opcode(), hci.ErrorSuccess)
	}
}

// e2eHal opens sessions immediately and echoes every local data fragment as
// a fixed distance estimate.
type e2eHal struct{ cb hal.Callback }

func (h *e2eHal) IsBound() bool                   { return true }
func (h *e2eHal) Version() hal.Version            { return hal.Version2 }
func (h *e2eHal) RegisterCallback(cb hal.Callback) { h.cb = cb }

func (h *e2eHal) OpenSession(connectionHandle, attHandle uint16, vendorData []hal.VendorSpecificCharacteristic) {
	h.cb.OnOpened(connectionHandle, nil)
}

func (h *e2eHal) WriteProcedureData(data hal.ProcedureData) {
	if data.Source == hal.SourceLocal {
		h.cb.OnResult(hal.RangingResult{
			ConnectionHandle: data.ConnectionHandle,
			DistanceMeters:   3.2,
			ConfidenceLevel:  0.8,
		})
	}
}

func (h *e2eHal) CloseSession(connectionHandle uint16) {}

type e2eFeatureSet struct{}

func (e2eFeatureSet) SupportsChannelSounding() bool { return true }

// e2eSink signals callback arrivals over channels so the test can wait
// without polling manager internals.
type e2eSink struct {
	started chan hci.Address
	results chan ranging.Result
	stopped chan ranging.Reason
}

func newE2ESink() *e2eSink {
	return &e2eSink{
		started: make(chan hci.Address, 4),
		results: make(chan ranging.Result, 64),
		stopped: make(chan ranging.Reason, 4),
	}
}

func (s *e2eSink) OnDistanceMeasurementStarted(address hci.Address, method ranging.Method) {
	s.started <- address
}

func (s *e2eSink) OnDistanceMeasurementResult(result ranging.Result) {
	s.results <- result
}

func (s *e2eSink) OnDistanceMeasurementStopped(address hci.Address, reason ranging.Reason, method ranging.Method) {
	s.stopped <- reason
}

// TestE2E_MeasurementSession drives a full session over all packages: the
// YAML config supplies the peer, the fake controller answers the whole
// negotiation, procedure data flows through the HAL, and the CBOR event log
// records the lifecycle.
func TestE2E_MeasurementSession(t *testing.T) {
	cfg := config.Default()
	require.NoError(t, cfg.Validate())
	peer := cfg.Peers[0]
	require.True(t, peer.SupportsRanging)
	address := hci.MustParseAddress(peer.Address)

	logPath := filepath.Join(t.TempDir(), "session.cbor")
	fileLogger, err := rangelog.NewFileLogger(logPath)
	require.NoError(t, err)

	channel := hcifake.New()
	controller := startE2EController(channel)
	defer controller.Close()

	accelerator := &e2eHal{}
	manager, err := ranging.NewManager(ranging.Deps{
		Commands:   channel,
		Controller: e2eFeatureSet{},
		Hal:        accelerator,
		Logger:     fileLogger,
	})
	require.NoError(t, err)
	manager.Start()
	defer manager.Close()

	sink := newE2ESink()
	manager.RegisterDistanceMeasurementCallbacks(sink)

	manager.StartDistanceMeasurement(address, peer.ConnectionHandle, hci.RoleCentral,
		cfg.DefaultInterval(), ranging.MethodCS)
	manager.HandleRasClientConnectedEvent(ras.ConnectedEvent{
		Address:          address,
		ConnectionHandle: peer.ConnectionHandle,
		AttHandle:        0x25,
		ConnInterval:     peer.ConnIntervalUnits,
	})

	select {
	case got := <-sink.started:
		assert.Equal(t, address, got)
	case <-time.After(5 * time.Second):
		t.Fatal("measurement never became active")
	}

	channel.IncomingLeMetaEvent(hci.SubeventResult{
		ConnectionHandle: peer.ConnectionHandle,
		ProcedureCounter: 1,
		ProcedureDone:    true,
		Data:             []byte{0x01, 0x02},
	})

	select {
	case result := <-sink.results:
		assert.Equal(t, address, result.Address)
		assert.InDelta(t, 3.2, result.DistanceMeters, 1e-9)
	case <-time.After(5 * time.Second):
		t.Fatal("no distance result delivered")
	}

	manager.StopDistanceMeasurement(address)

	select {
	case reason := <-sink.stopped:
		assert.Equal(t, ranging.ReasonLocalRequest, reason)
	case <-time.After(5 * time.Second):
		t.Fatal("no terminal callback delivered")
	}

	require.NoError(t, fileLogger.Close())

	// The event log must contain the lifecycle: at least one state change
	// into ACTIVE, the measurement, and the stop.
	f, err := os.Open(logPath)
	require.NoError(t, err)
	defer f.Close()

	dec := rangelog.NewDecoder(f)
	var sawActive, sawMeasurement, sawStopped bool
	for {
		var ev rangelog.Event
		if err := dec.Decode(&ev); err != nil {
			break
		}
		if ev.StateChange != nil && ev.StateChange.NewState == "ACTIVE" {
			sawActive = true
		}
		if ev.Measurement != nil {
			sawMeasurement = true
		}
		if ev.StateChange != nil && ev.StateChange.NewState == "STOPPED" {
			sawStopped = true
		}
	}
	assert.True(t, sawActive, "expected an ACTIVE state change in the event log")
	assert.True(t, sawMeasurement, "expected a measurement record in the event log")
	assert.True(t, sawStopped, "expected a STOPPED state change in the event log")
}
