package ranging

import (
	"errors"
	"fmt"
	"time"

	"github.com/Neoteric-OS/android-packages-modules-Bluetooth/pkg/dispatch"
	"github.com/Neoteric-OS/android-packages-modules-Bluetooth/pkg/hal"
	"github.com/Neoteric-OS/android-packages-modules-Bluetooth/pkg/hci"
	"github.com/Neoteric-OS/android-packages-modules-Bluetooth/pkg/rangelog"
	"github.com/Neoteric-OS/android-packages-modules-Bluetooth/pkg/ras"
)

// ErrNilDependency is returned by NewManager when a required collaborator
// is missing.
var ErrNilDependency = errors.New("ranging: nil dependency")

// Controller exposes the local controller features the manager gates on.
type Controller interface {
	// SupportsChannelSounding reports whether the controller implements the
	// LE channel sounding feature.
	SupportsChannelSounding() bool
}

// Deps are the collaborators a Manager is built from. Commands, Controller
// and Hal are required; Logger defaults to rangelog.NoopLogger and Clock to
// the system clock.
type Deps struct {
	Commands   hci.CommandChannel
	Controller Controller
	Hal        hal.RangingHal
	Logger     rangelog.Logger
	Clock      dispatch.Clock
}

// Manager orchestrates distance measurement sessions. It owns one tracker
// per remote address and routes HCI events, RAS session events and HAL
// callbacks to the right one. All state is confined to an internal handler
// goroutine; every public method is safe to call from any goroutine.
type Manager struct {
	commands   hci.CommandChannel
	controller Controller
	hal        hal.RangingHal
	log        rangelog.Logger
	clock      dispatch.Clock
	handler    *dispatch.Handler

	// Handler-confined state below.
	callbacks   Callbacks
	csSupported bool

	localCaps        *hci.CsCapabilities
	localCapsPending bool
	localCapsFailed  bool

	byAddress map[hci.Address]*tracker
	byHandle  map[uint16]*tracker
}

// NewManager creates a Manager from its collaborators. Call Start before
// any other method.
func NewManager(deps Deps) (*Manager, error) {
	if deps.Commands == nil || deps.Controller == nil || deps.Hal == nil {
		return nil, ErrNilDependency
	}
	logger := deps.Logger
	if logger == nil {
		logger = rangelog.NoopLogger{}
	}
	clock := deps.Clock
	if clock == nil {
		clock = dispatch.SystemClock()
	}
	return &Manager{
		commands:   deps.Commands,
		controller: deps.Controller,
		hal:        deps.Hal,
		log:        logger,
		clock:      clock,
		handler:    dispatch.NewWithClock(clock),
		byAddress:  make(map[hci.Address]*tracker),
		byHandle:   make(map[uint16]*tracker),
	}, nil
}

// Start hooks the manager into the HCI event stream and the ranging HAL.
func (m *Manager) Start() {
	m.csSupported = m.controller.SupportsChannelSounding()

	sink := hci.LeEventHandlerFunc(func(ev hci.LeEvent) {
		m.handler.Post(func() { m.handleLeEvent(ev) })
	})
	for _, code := range []hci.SubeventCode{
		hci.SubeventCsReadRemoteSupportedCapabilitiesComplete,
		hci.SubeventCsSecurityEnableComplete,
		hci.SubeventCsConfigComplete,
		hci.SubeventCsProcedureEnableComplete,
		hci.SubeventCsSubeventResult,
		hci.SubeventCsSubeventResultContinue,
	} {
		m.commands.SetLeEventHandler(code, sink)
	}

	m.hal.RegisterCallback(halSink{m})
}

// Close stops every tracked measurement with ReasonLocalRequest and shuts
// the handler goroutine down.
func (m *Manager) Close() {
	m.handler.Post(func() {
		for _, t := range m.trackers() {
			m.terminate(t, ReasonLocalRequest, "manager shutdown")
		}
	})
	m.handler.Sync()
	m.handler.Close()
}

// RegisterDistanceMeasurementCallbacks sets the process-wide callback sink.
// Later registration replaces the former.
func (m *Manager) RegisterDistanceMeasurementCallbacks(cb Callbacks) {
	m.handler.Post(func() { m.callbacks = cb })
}

// StartDistanceMeasurement begins a measurement toward address over the
// given ACL connection. A second start for an address already tracked is
// rejected; the rejection surfaces as an immediate terminal callback for
// the new request while the existing session continues untouched.
func (m *Manager) StartDistanceMeasurement(address hci.Address, connectionHandle uint16,
	role hci.Role, interval time.Duration, method Method) {
	m.handler.Post(func() { m.start(address, connectionHandle, role, interval, method) })
}

// StopDistanceMeasurement ends the measurement toward address with
// ReasonLocalRequest. A stop for an untracked address is a no-op.
func (m *Manager) StopDistanceMeasurement(address hci.Address) {
	m.handler.Post(func() {
		t := m.byAddress[address]
		if t == nil {
			m.logDrop(fmt.Sprintf("stop for untracked address %s", address))
			return
		}
		m.terminate(t, ReasonLocalRequest, "caller stop")
	})
}

// HandleRasClientConnectedEvent implements ras.SessionEvents.
func (m *Manager) HandleRasClientConnectedEvent(ev ras.ConnectedEvent) {
	m.handler.Post(func() {
		t := m.byAddress[ev.Address]
		if t == nil {
			m.logDrop(fmt.Sprintf("ras connected for untracked address %s", ev.Address))
			return
		}
		if t.state != StateWaitRasConnected {
			m.logDrop(fmt.Sprintf("ras connected in state %s", t.state))
			return
		}
		t.attHandle = ev.AttHandle
		t.connInterval = ev.ConnInterval
		m.setState(t, StateWaitRemoteCaps, "ras connected")

		// The HAL session must exist before the first CS command; the
		// remote capability read is issued from OnOpened.
		m.hal.OpenSession(t.connectionHandle, t.attHandle, ev.VendorData)
	})
}

// HandleRasClientDisconnectedEvent implements ras.SessionEvents.
func (m *Manager) HandleRasClientDisconnectedEvent(ev ras.DisconnectedEvent) {
	m.handler.Post(func() {
		t := m.byAddress[ev.Address]
		if t == nil {
			m.logDrop(fmt.Sprintf("ras disconnect for untracked address %s", ev.Address))
			return
		}
		// Before the remote capability read completes the peer has never
		// proven it supports ranging at all.
		reason := ReasonInternalError
		if t.remoteCaps == nil {
			reason = ReasonFeatureNotSupportedRemote
		}
		m.terminate(t, reason, fmt.Sprintf("ras disconnected: %s", ev.Reason))
	})
}

// HandleRemoteProcedureData implements ras.SessionEvents.
func (m *Manager) HandleRemoteProcedureData(address hci.Address, procedureCounter uint16, data []byte) {
	m.handler.Post(func() {
		t := m.byAddress[address]
		if t == nil || t.state != StateActive {
			m.logDrop(fmt.Sprintf("remote procedure data for inactive address %s", address))
			return
		}
		m.hal.WriteProcedureData(hal.ProcedureData{
			ConnectionHandle: t.connectionHandle,
			ProcedureCounter: procedureCounter,
			Source:           hal.SourceRemote,
			Data:             data,
		})
	})
}

func (m *Manager) start(address hci.Address, connectionHandle uint16,
	role hci.Role, interval time.Duration, method Method) {
	if method != MethodCS {
		m.logDrop(fmt.Sprintf("method %s not served for %s", method, address))
		m.notifyStopped(address, ReasonFeatureNotSupportedLocal, method)
		return
	}
	if !m.csSupported || !m.hal.IsBound() {
		m.logDrop(fmt.Sprintf("channel sounding unavailable for %s", address))
		m.notifyStopped(address, ReasonInternalError, method)
		return
	}
	if _, busy := m.byAddress[address]; busy {
		m.logDrop(fmt.Sprintf("measurement already running for %s", address))
		m.notifyStopped(address, ReasonInternalError, method)
		return
	}
	if m.localCapsFailed {
		m.notifyStopped(address, ReasonInternalError, method)
		return
	}

	t := newTracker(m.handler, address, connectionHandle, role, interval, method)
	m.byAddress[address] = t
	m.byHandle[connectionHandle] = t

	if m.localCaps != nil {
		m.setState(t, StateWaitRasConnected, "local capabilities cached")
		return
	}
	m.setState(t, StateWaitLocalCaps, "")
	if !m.localCapsPending {
		m.localCapsPending = true
		m.commands.EnqueueCommand(hci.LeCsReadLocalSupportedCapabilities{}, func(res hci.CommandResult) {
			m.handler.Post(func() { m.onLocalCapsResult(res) })
		})
	}
}

// The local capability read happens once per manager and gates every
// queued start.
func (m *Manager) onLocalCapsResult(res hci.CommandResult) {
	m.localCapsPending = false

	complete, ok := res.Complete.(*hci.LocalCapabilitiesComplete)
	status := res.Status
	if status.IsSuccess() {
		if ok {
			status = complete.Status
		} else {
			status = hci.ErrorUnspecifiedError
		}
	}
	m.logCommand(nil, res.Opcode, status, 0)

	if !status.IsSuccess() {
		m.localCapsFailed = true
		for _, t := range m.trackers() {
			if t.state == StateWaitLocalCaps {
				m.terminate(t, ReasonInternalError, "local capability read failed")
			}
		}
		return
	}

	caps := complete.Capabilities
	m.localCaps = &caps
	for _, t := range m.trackers() {
		if t.state == StateWaitLocalCaps {
			m.setState(t, StateWaitRasConnected, "local capabilities read")
		}
	}
}

func (m *Manager) handleLeEvent(ev hci.LeEvent) {
	switch e := ev.(type) {
	case hci.RemoteCapabilitiesComplete:
		m.onRemoteCapsComplete(e)
	case hci.ConfigComplete:
		m.onConfigComplete(e)
	case hci.SecurityEnableComplete:
		m.onSecurityEnableComplete(e)
	case hci.ProcedureEnableComplete:
		m.onProcedureEnableComplete(e)
	case hci.SubeventResult:
		m.onSubeventResult(e)
	default:
		m.logDrop(fmt.Sprintf("unhandled subevent %s", ev.Subevent()))
	}
}

// trackerForHandle routes an inbound HCI event. Events for unknown handles
// are dropped with a diagnostic.
func (m *Manager) trackerForHandle(handle uint16, what string) *tracker {
	t := m.byHandle[handle]
	if t == nil {
		m.logDrop(fmt.Sprintf("%s for unknown connection handle %d", what, handle))
	}
	return t
}

// enqueue submits a tracker-bound command. The completion is dropped if the
// tracker was torn down while the command was in flight.
func (m *Manager) enqueue(t *tracker, cmd hci.Command, onResult func(*tracker, hci.CommandResult)) {
	m.commands.EnqueueCommand(cmd, func(res hci.CommandResult) {
		m.handler.Post(func() {
			if m.byAddress[t.address] != t {
				return
			}
			onResult(t, res)
		})
	})
}

func (m *Manager) sendRemoteCapsRead(t *tracker) {
	m.enqueue(t, hci.LeCsReadRemoteSupportedCapabilities{ConnectionHandle: t.connectionHandle},
		func(t *tracker, res hci.CommandResult) {
			m.logCommand(t, res.Opcode, res.Status, 0)
			if !res.Status.IsSuccess() {
				m.terminate(t, ReasonInternalError, "remote capability read rejected")
			}
		})
}

func (m *Manager) onRemoteCapsComplete(ev hci.RemoteCapabilitiesComplete) {
	t := m.trackerForHandle(ev.ConnectionHandle, "remote capabilities complete")
	if t == nil || t.state != StateWaitRemoteCaps {
		return
	}
	if !ev.Status.IsSuccess() {
		// Capability mismatches are not transient; no retry.
		m.terminate(t, ReasonInternalError, "remote capability read failed")
		return
	}
	caps := ev.Capabilities
	t.remoteCaps = &caps
	m.setState(t, StateWaitDefaultSettings, "remote capabilities read")
	m.sendDefaultSettings(t)
}

func (m *Manager) sendDefaultSettings(t *tracker) {
	cmd := hci.LeCsSetDefaultSettings{
		ConnectionHandle:       t.connectionHandle,
		RoleEnable:             hci.CsRoleSupportInitiator | hci.CsRoleSupportReflector,
		CsSyncAntennaSelection: defaultCsSyncAntennaSelection,
		MaxTxPower:             defaultMaxTxPower,
	}
	m.enqueue(t, cmd, func(t *tracker, res hci.CommandResult) {
		status := res.Status
		if complete, ok := res.Complete.(*hci.DefaultSettingsComplete); ok && status.IsSuccess() {
			status = complete.Status
		}
		m.logCommand(t, res.Opcode, status, 0)
		if t.state != StateWaitDefaultSettings {
			return
		}
		if !status.IsSuccess() {
			m.terminate(t, ReasonInternalError, "set default settings failed")
			return
		}
		m.setState(t, StateWaitConfigComplete, "default settings applied")
		m.sendCreateConfig(t)
	})
}

func (m *Manager) sendCreateConfig(t *tracker) {
	m.enqueue(t, t.createConfigCommand(), func(t *tracker, res hci.CommandResult) {
		m.logCommand(t, res.Opcode, res.Status, t.createConfigRetries)
		if t.state != StateWaitConfigComplete {
			return
		}
		if !res.Status.IsSuccess() {
			m.retryCreateConfig(t)
		}
	})
}

// retryCreateConfig resends create config immediately. Config creation is a
// one-time negotiation, so the resend is not gated on the measurement
// interval the way procedure enable retries are.
func (m *Manager) retryCreateConfig(t *tracker) {
	t.createConfigRetries++
	if t.createConfigRetries <= maxCreateConfigRetries {
		m.sendCreateConfig(t)
		return
	}
	m.terminate(t, ReasonInternalError, "create config retries exhausted")
}

func (m *Manager) onConfigComplete(ev hci.ConfigComplete) {
	t := m.trackerForHandle(ev.ConnectionHandle, "config complete")
	if t == nil || t.state != StateWaitConfigComplete {
		return
	}
	if !ev.Status.IsSuccess() {
		m.retryCreateConfig(t)
		return
	}
	if ev.Action != hci.CsConfigActionCreated {
		m.logDrop(fmt.Sprintf("config complete with action %d while creating", ev.Action))
		return
	}
	t.configID = ev.ConfigID
	m.setState(t, StateWaitSecurityEnable, "config created")
	m.sendSecurityEnable(t)
}

func (m *Manager) sendSecurityEnable(t *tracker) {
	m.enqueue(t, hci.LeCsSecurityEnable{ConnectionHandle: t.connectionHandle},
		func(t *tracker, res hci.CommandResult) {
			m.logCommand(t, res.Opcode, res.Status, 0)
			if t.state != StateWaitSecurityEnable {
				return
			}
			if !res.Status.IsSuccess() {
				m.terminate(t, ReasonInternalError, "security enable rejected")
			}
		})
}

func (m *Manager) onSecurityEnableComplete(ev hci.SecurityEnableComplete) {
	t := m.trackerForHandle(ev.ConnectionHandle, "security enable complete")
	if t == nil || t.state != StateWaitSecurityEnable {
		return
	}
	if !ev.Status.IsSuccess() {
		m.terminate(t, ReasonInternalError, "security enable failed")
		return
	}
	m.setState(t, StateWaitProcedureParams, "security started")
	m.sendProcedureParameters(t)
}

func (m *Manager) sendProcedureParameters(t *tracker) {
	m.enqueue(t, t.procedureParametersCommand(), func(t *tracker, res hci.CommandResult) {
		status := res.Status
		if complete, ok := res.Complete.(*hci.ProcedureParametersComplete); ok && status.IsSuccess() {
			status = complete.Status
		}
		m.logCommand(t, res.Opcode, status, 0)
		if t.state != StateWaitProcedureParams {
			return
		}
		if !status.IsSuccess() {
			m.terminate(t, ReasonInternalError, "set procedure parameters failed")
			return
		}
		m.setState(t, StateWaitProcedureEnable, "procedure parameters set")
		m.sendProcedureEnable(t)
	})
}

func (m *Manager) sendProcedureEnable(t *tracker) {
	cmd := hci.LeCsProcedureEnable{
		ConnectionHandle: t.connectionHandle,
		ConfigID:         t.configID,
		Enable:           hci.Enabled,
	}
	m.enqueue(t, cmd, func(t *tracker, res hci.CommandResult) {
		m.logCommand(t, res.Opcode, res.Status, t.procedureEnableRetries)
		if t.state != StateWaitProcedureEnable {
			return
		}
		if !res.Status.IsSuccess() {
			m.retryProcedureEnable(t)
		}
	})
}

// retryProcedureEnable waits out a full measurement interval before
// resending so repeated failures do not flood the controller.
func (m *Manager) retryProcedureEnable(t *tracker) {
	t.procedureEnableRetries++
	if t.procedureEnableRetries > maxProcedureEnableRetries {
		m.terminate(t, ReasonInternalError, "procedure enable retries exhausted")
		return
	}
	t.retryAlarm.Schedule(t.interval, func() {
		if m.byAddress[t.address] != t || t.state != StateWaitProcedureEnable {
			return
		}
		m.sendProcedureEnable(t)
	})
}

func (m *Manager) onProcedureEnableComplete(ev hci.ProcedureEnableComplete) {
	t := m.trackerForHandle(ev.ConnectionHandle, "procedure enable complete")
	if t == nil {
		return
	}
	switch t.state {
	case StateWaitProcedureEnable:
		// Direction is checked before status: a controller confirming
		// DISABLED for an enable request has desynchronized from the host
		// and cannot be trusted to self-correct.
		if ev.State != hci.Enabled {
			m.terminate(t, ReasonInternalError, "procedure enable direction mismatch")
			return
		}
		if !ev.Status.IsSuccess() {
			m.retryProcedureEnable(t)
			return
		}
		m.setState(t, StateActive, "procedures enabled")
		if m.callbacks != nil {
			m.callbacks.OnDistanceMeasurementStarted(t.address, t.method)
		}
	case StateActive:
		if ev.State == hci.Disabled {
			m.terminate(t, ReasonInternalError, "procedures disabled by controller")
		}
	default:
		m.logDrop(fmt.Sprintf("procedure enable complete in state %s", t.state))
	}
}

func (m *Manager) onSubeventResult(ev hci.SubeventResult) {
	t := m.trackerForHandle(ev.ConnectionHandle, "subevent result")
	if t == nil || t.state != StateActive {
		return
	}
	m.hal.WriteProcedureData(hal.ProcedureData{
		ConnectionHandle: t.connectionHandle,
		ProcedureCounter: ev.ProcedureCounter,
		Source:           hal.SourceLocal,
		Data:             ev.Data,
	})
}

// terminate tears a tracker down and emits the terminal callback exactly
// once. A clean caller stop additionally disables procedures and removes
// the config on the controller, best effort.
func (m *Manager) terminate(t *tracker, reason Reason, detail string) {
	t.retryAlarm.Cancel()

	if t.state == StateActive && reason == ReasonLocalRequest {
		disable := hci.LeCsProcedureEnable{
			ConnectionHandle: t.connectionHandle,
			ConfigID:         t.configID,
			Enable:           hci.Disabled,
		}
		m.commands.EnqueueCommand(disable, func(res hci.CommandResult) {
			m.handler.Post(func() { m.logCommand(nil, res.Opcode, res.Status, 0) })
		})
		remove := hci.LeCsRemoveConfig{ConnectionHandle: t.connectionHandle, ConfigID: t.configID}
		m.commands.EnqueueCommand(remove, func(res hci.CommandResult) {
			m.handler.Post(func() { m.logCommand(nil, res.Opcode, res.Status, 0) })
		})
	}

	m.setState(t, StateStopped, detail)
	delete(m.byAddress, t.address)
	delete(m.byHandle, t.connectionHandle)
	m.hal.CloseSession(t.connectionHandle)

	if !t.terminalSent {
		t.terminalSent = true
		m.notifyStopped(t.address, reason, t.method)
	}
}

func (m *Manager) notifyStopped(address hci.Address, reason Reason, method Method) {
	if m.callbacks != nil {
		m.callbacks.OnDistanceMeasurementStopped(address, reason, method)
	}
}

func (m *Manager) trackers() []*tracker {
	out := make([]*tracker, 0, len(m.byAddress))
	for _, t := range m.byAddress {
		out = append(out, t)
	}
	return out
}

func (m *Manager) setState(t *tracker, next State, reason string) {
	old := t.state
	t.state = next
	m.log.Log(rangelog.Event{
		Timestamp:        m.clock.Now(),
		SessionID:        t.sessionID.String(),
		Address:          t.address.String(),
		ConnectionHandle: t.connectionHandle,
		Category:         rangelog.CategoryState,
		StateChange: &rangelog.StateChangeRecord{
			OldState: old.String(),
			NewState: next.String(),
			Reason:   reason,
		},
	})
}

func (m *Manager) logCommand(t *tracker, op hci.OpCode, status hci.ErrorCode, retry int) {
	ev := rangelog.Event{
		Timestamp: m.clock.Now(),
		Category:  rangelog.CategoryCommand,
		Command: &rangelog.CommandRecord{
			Opcode: op.String(),
			Status: status.String(),
			Retry:  retry,
		},
	}
	if t != nil {
		ev.SessionID = t.sessionID.String()
		ev.Address = t.address.String()
		ev.ConnectionHandle = t.connectionHandle
	}
	m.log.Log(ev)
}

func (m *Manager) logDrop(msg string) {
	m.log.Log(rangelog.Event{
		Timestamp: m.clock.Now(),
		Category:  rangelog.CategoryError,
		Error:     &rangelog.ErrorRecord{Message: msg, Context: "event routing"},
	})
}

// halSink adapts HAL callbacks onto the manager's handler.
type halSink struct{ m *Manager }

// OnOpened implements hal.Callback. The vendor bootstrap payload is held on
// the tracker for the RAS client; the remote capability read is issued now
// that the session exists.
func (s halSink) OnOpened(connectionHandle uint16, vendorData []hal.VendorSpecificCharacteristic) {
	m := s.m
	m.handler.Post(func() {
		t := m.trackerForHandle(connectionHandle, "hal session opened")
		if t == nil || t.state != StateWaitRemoteCaps {
			return
		}
		t.localVendorData = vendorData
		m.sendRemoteCapsRead(t)
	})
}

// OnOpenFailed implements hal.Callback.
func (s halSink) OnOpenFailed(connectionHandle uint16) {
	m := s.m
	m.handler.Post(func() {
		t := m.trackerForHandle(connectionHandle, "hal session open failure")
		if t == nil {
			return
		}
		m.terminate(t, ReasonInternalError, "hal session open failed")
	})
}

// OnResult implements hal.Callback.
func (s halSink) OnResult(result hal.RangingResult) {
	m := s.m
	m.handler.Post(func() {
		t := m.trackerForHandle(result.ConnectionHandle, "hal result")
		if t == nil || t.state != StateActive {
			return
		}
		r := Result{
			Address:         t.address,
			Method:          t.method,
			DistanceMeters:  result.DistanceMeters,
			ConfidenceLevel: result.ConfidenceLevel,
		}
		m.log.Log(rangelog.Event{
			Timestamp:        m.clock.Now(),
			SessionID:        t.sessionID.String(),
			Address:          t.address.String(),
			ConnectionHandle: t.connectionHandle,
			Category:         rangelog.CategoryMeasurement,
			Measurement: &rangelog.MeasurementRecord{
				DistanceMeters:  result.DistanceMeters,
				ConfidenceLevel: result.ConfidenceLevel,
			},
		})
		if m.callbacks != nil {
			m.callbacks.OnDistanceMeasurementResult(r)
		}
	})
}

var (
	_ ras.SessionEvents = (*Manager)(nil)
	_ hal.Callback      = halSink{}
)
