package main

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Neoteric-OS/android-packages-modules-Bluetooth/pkg/hal"
	"github.com/Neoteric-OS/android-packages-modules-Bluetooth/pkg/hci"
	"github.com/Neoteric-OS/android-packages-modules-Bluetooth/pkg/hci/hcifake"
	"github.com/Neoteric-OS/android-packages-modules-Bluetooth/pkg/ras"
)

// simPeer is one simulated remote device.
type simPeer struct {
	address          hci.Address
	connectionHandle uint16
	connInterval     uint16
	supportsRanging  bool
}

// simController answers the commands the manager enqueues on the fake HCI
// channel the way a CS-capable controller would, and synthesizes subevent
// results while procedures are enabled.
type simController struct {
	ch    *hcifake.Channel
	peers map[uint16]simPeer

	// ras receives the peer side of the procedure data, as if relayed by
	// the Ranging Service client.
	ras ras.SessionEvents

	mu        sync.Mutex
	intervals map[uint16]time.Duration
	cancels   map[uint16]context.CancelFunc
}

var simCaps = hci.CsCapabilities{
	NumConfigSupported:       4,
	NumAntennasSupported:     2,
	MaxAntennaPathsSupported: 4,
	RolesSupported:           hci.CsRoleSupportInitiator | hci.CsRoleSupportReflector,
	ModesSupported:           0x07,
	CsSyncPhysSupported:      0x01,
	TIp1TimesSupported:       0x00FF,
	TIp2TimesSupported:       0x00FF,
	TFcsTimesSupported:       0x00FF,
	TPmTimesSupported:        0x000F,
}

func newSimController(ch *hcifake.Channel, peers []simPeer) *simController {
	byHandle := make(map[uint16]simPeer, len(peers))
	for _, p := range peers {
		byHandle[p.connectionHandle] = p
	}
	return &simController{
		ch:        ch,
		peers:     byHandle,
		intervals: make(map[uint16]time.Duration),
		cancels:   make(map[uint16]context.CancelFunc),
	}
}

// Run consumes and answers commands until ctx is cancelled.
func (s *simController) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			s.stopAllProcedures()
			return
		default:
		}
		cmd, err := s.ch.NextCommand(200 * time.Millisecond)
		if err != nil {
			continue
		}
		s.respond(ctx, cmd)
	}
}

func (s *simController) respond(ctx context.Context, cmd hci.Command) {
	switch c := cmd.(type) {
	case hci.LeCsReadLocalSupportedCapabilities:
		s.ch.IncomingCommandComplete(c.Opcode(), hci.ErrorSuccess,
			&hci.LocalCapabilitiesComplete{Status: hci.ErrorSuccess, Capabilities: simCaps})

	case hci.LeCsReadRemoteSupportedCapabilities:
		s.ch.IncomingCommandStatus(c.Opcode(), hci.ErrorSuccess)
		s.ch.IncomingLeMetaEvent(hci.RemoteCapabilitiesComplete{
			Status:           hci.ErrorSuccess,
			ConnectionHandle: c.ConnectionHandle,
			Capabilities:     simCaps,
		})

	case hci.LeCsSetDefaultSettings:
		s.ch.IncomingCommandComplete(c.Opcode(), hci.ErrorSuccess,
			&hci.DefaultSettingsComplete{Status: hci.ErrorSuccess, ConnectionHandle: c.ConnectionHandle})

	case hci.LeCsCreateConfig:
		s.ch.IncomingCommandStatus(c.Opcode(), hci.ErrorSuccess)
		s.ch.IncomingLeMetaEvent(hci.ConfigComplete{
			Status:           hci.ErrorSuccess,
			ConnectionHandle: c.ConnectionHandle,
			ConfigID:         c.ConfigID,
			Action:           hci.CsConfigActionCreated,
			MainModeType:     c.MainModeType,
			Role:             c.Role,
		})

	case hci.LeCsSecurityEnable:
		s.ch.IncomingCommandStatus(c.Opcode(), hci.ErrorSuccess)
		s.ch.IncomingLeMetaEvent(hci.SecurityEnableComplete{
			Status:           hci.ErrorSuccess,
			ConnectionHandle: c.ConnectionHandle,
		})

	case hci.LeCsSetProcedureParameters:
		s.rememberInterval(c)
		s.ch.IncomingCommandComplete(c.Opcode(), hci.ErrorSuccess,
			&hci.ProcedureParametersComplete{Status: hci.ErrorSuccess, ConnectionHandle: c.ConnectionHandle})

	case hci.LeCsProcedureEnable:
		s.ch.IncomingCommandStatus(c.Opcode(), hci.ErrorSuccess)
		s.ch.IncomingLeMetaEvent(hci.ProcedureEnableComplete{
			Status:           hci.ErrorSuccess,
			ConnectionHandle: c.ConnectionHandle,
			ConfigID:         c.ConfigID,
			State:            c.Enable,
		})
		if c.Enable == hci.Enabled {
			s.startProcedures(ctx, c.ConnectionHandle)
		} else {
			s.stopProcedures(c.ConnectionHandle)
		}

	case hci.LeCsRemoveConfig:
		s.stopProcedures(c.ConnectionHandle)
		s.ch.IncomingCommandStatus(c.Opcode(), hci.ErrorSuccess)
	}
}

// rememberInterval derives the wall-clock procedure cadence from the
// negotiated schedule.
func (s *simController) rememberInterval(c hci.LeCsSetProcedureParameters) {
	peer, ok := s.peers[c.ConnectionHandle]
	if !ok {
		return
	}
	units := float64(c.MinProcedureInterval) * float64(peer.connInterval) * 1.25
	d := time.Duration(units * float64(time.Millisecond))
	if d < 50*time.Millisecond {
		d = 50 * time.Millisecond
	}
	s.mu.Lock()
	s.intervals[c.ConnectionHandle] = d
	s.mu.Unlock()
}

// startProcedures emits one subevent result per procedure interval and
// relays the peer side of the data until stopped.
func (s *simController) startProcedures(ctx context.Context, handle uint16) {
	s.mu.Lock()
	if cancel, ok := s.cancels[handle]; ok {
		cancel()
	}
	interval := s.intervals[handle]
	if interval == 0 {
		interval = 200 * time.Millisecond
	}
	procCtx, cancel := context.WithCancel(ctx)
	s.cancels[handle] = cancel
	peer := s.peers[handle]
	s.mu.Unlock()

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		var counter uint16
		for {
			select {
			case <-procCtx.Done():
				return
			case <-ticker.C:
				counter++
				data := make([]byte, 16)
				rand.Read(data)
				s.ch.IncomingLeMetaEvent(hci.SubeventResult{
					ConnectionHandle: handle,
					ProcedureCounter: counter,
					ProcedureDone:    true,
					Data:             data,
				})
				if s.ras != nil {
					remote := make([]byte, 16)
					rand.Read(remote)
					s.ras.HandleRemoteProcedureData(peer.address, counter, remote)
				}
			}
		}
	}()
}

func (s *simController) stopProcedures(handle uint16) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if cancel, ok := s.cancels[handle]; ok {
		cancel()
		delete(s.cancels, handle)
	}
}

func (s *simController) stopAllProcedures() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for handle, cancel := range s.cancels {
		cancel()
		delete(s.cancels, handle)
	}
}

// simHal is a toy ranging accelerator: it opens sessions after a short
// delay and random-walks a distance estimate per fragment of local
// procedure data.
type simHal struct {
	mu        sync.Mutex
	cb        hal.Callback
	distances map[uint16]float64
}

func newSimHal() *simHal {
	return &simHal{distances: make(map[uint16]float64)}
}

func (h *simHal) IsBound() bool        { return true }
func (h *simHal) Version() hal.Version { return hal.Version2 }

func (h *simHal) RegisterCallback(cb hal.Callback) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.cb = cb
}

func (h *simHal) OpenSession(connectionHandle, attHandle uint16, vendorData []hal.VendorSpecificCharacteristic) {
	h.mu.Lock()
	h.distances[connectionHandle] = 1.0 + rand.Float64()*4.0
	cb := h.cb
	h.mu.Unlock()

	go func() {
		time.Sleep(10 * time.Millisecond)
		if cb != nil {
			cb.OnOpened(connectionHandle, []hal.VendorSpecificCharacteristic{
				{CharacteristicUUID: uuid.New(), Value: []byte{0x01}},
			})
		}
	}()
}

func (h *simHal) WriteProcedureData(data hal.ProcedureData) {
	if data.Source != hal.SourceLocal {
		return
	}
	h.mu.Lock()
	d, ok := h.distances[data.ConnectionHandle]
	if !ok {
		h.mu.Unlock()
		return
	}
	d += (rand.Float64() - 0.5) * 0.2
	if d < 0.1 {
		d = 0.1
	}
	h.distances[data.ConnectionHandle] = d
	cb := h.cb
	h.mu.Unlock()

	if cb != nil {
		cb.OnResult(hal.RangingResult{
			ConnectionHandle: data.ConnectionHandle,
			DistanceMeters:   d,
			ConfidenceLevel:  0.7 + rand.Float64()*0.3,
		})
	}
}

func (h *simHal) CloseSession(connectionHandle uint16) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.distances, connectionHandle)
}

// simulatedController reports the feature set of the fake controller.
type simulatedController struct{}

func (simulatedController) SupportsChannelSounding() bool { return true }
