package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/chzyer/readline"
	"github.com/google/uuid"

	"github.com/Neoteric-OS/android-packages-modules-Bluetooth/pkg/hal"
	"github.com/Neoteric-OS/android-packages-modules-Bluetooth/pkg/hci"
	"github.com/Neoteric-OS/android-packages-modules-Bluetooth/pkg/ranging"
	"github.com/Neoteric-OS/android-packages-modules-Bluetooth/pkg/ras"
)

// console is the interactive loop of the demo. It doubles as the callback
// sink so measurement events print between prompts.
type console struct {
	rl       *readline.Instance
	m        *ranging.Manager
	peers    []simPeer
	interval time.Duration

	mu     sync.Mutex
	status map[hci.Address]string
}

func newConsole(m *ranging.Manager, peers []simPeer, interval time.Duration) (*console, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "ranging> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create readline: %w", err)
	}
	return &console{
		rl:       rl,
		m:        m,
		peers:    peers,
		interval: interval,
		status:   make(map[hci.Address]string),
	}, nil
}

// Run starts the interactive command loop.
func (c *console) Run(ctx context.Context, cancel context.CancelFunc) {
	defer c.rl.Close()

	c.printHelp()

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		line, err := c.rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt {
				continue
			}
			fmt.Fprintln(c.rl.Stdout(), "Exiting...")
			cancel()
			return
		}

		input := strings.TrimSpace(line)
		if input == "" {
			continue
		}

		parts := strings.Fields(input)
		cmd := strings.ToLower(parts[0])
		args := parts[1:]

		switch cmd {
		case "help", "?":
			c.printHelp()

		case "peers", "p":
			c.cmdPeers()

		case "start":
			c.cmdStart(args)

		case "stop":
			c.cmdStop(args)

		case "status", "s":
			c.cmdStatus()

		case "quit", "exit", "q":
			fmt.Fprintln(c.rl.Stdout(), "Exiting...")
			cancel()
			return

		default:
			fmt.Fprintf(c.rl.Stdout(), "Unknown command: %s (type 'help' for commands)\n", cmd)
		}
	}
}

func (c *console) printHelp() {
	fmt.Fprintln(c.rl.Stdout(), `
Channel Sounding Ranging Commands:
  peers               - List simulated peers
  start <addr> [ms]   - Start distance measurement toward a peer
  stop <addr>         - Stop distance measurement
  status              - Show measurement status per peer
  help                - Show this help
  quit                - Exit`)
}

func (c *console) cmdPeers() {
	fmt.Fprintln(c.rl.Stdout(), "\nSimulated Peers:")
	fmt.Fprintln(c.rl.Stdout(), "-------------------------------------------")
	for _, p := range c.peers {
		capability := "no ranging service"
		if p.supportsRanging {
			capability = "ranging capable"
		}
		fmt.Fprintf(c.rl.Stdout(), "  %s  handle=%d  connInterval=%.2fms  (%s)\n",
			p.address, p.connectionHandle, float64(p.connInterval)*1.25, capability)
	}
	fmt.Fprintln(c.rl.Stdout())
}

func (c *console) cmdStart(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(c.rl.Stdout(), "Usage: start <addr> [interval-ms]")
		return
	}
	peer, ok := c.findPeer(args[0])
	if !ok {
		fmt.Fprintf(c.rl.Stdout(), "Unknown peer: %s (use 'peers')\n", args[0])
		return
	}

	interval := c.interval
	if len(args) >= 2 {
		ms, err := strconv.Atoi(args[1])
		if err != nil || ms <= 0 {
			fmt.Fprintf(c.rl.Stdout(), "Invalid interval: %s\n", args[1])
			return
		}
		interval = time.Duration(ms) * time.Millisecond
	}

	c.setStatus(peer.address, "negotiating")
	c.m.StartDistanceMeasurement(peer.address, peer.connectionHandle, hci.RoleCentral, interval, ranging.MethodCS)

	// Simulate the RAS client discovering the peer's Ranging Service.
	go c.simulateRasDiscovery(peer)

	fmt.Fprintf(c.rl.Stdout(), "Started measurement toward %s (every %s)\n", peer.address, interval)
}

// simulateRasDiscovery plays the GATT side: a ranging capable peer connects
// with its bootstrap payload, any other peer reports no service.
func (c *console) simulateRasDiscovery(peer simPeer) {
	time.Sleep(50 * time.Millisecond)

	if !peer.supportsRanging {
		c.m.HandleRasClientDisconnectedEvent(ras.DisconnectedEvent{
			Address: peer.address,
			Reason:  ras.DisconnectReasonServerNotAvailable,
		})
		return
	}

	// The peer publishes its vendor characteristics as an encoded blob;
	// decode it the way the GATT client would.
	blob, err := ras.EncodeBootstrapData([]hal.VendorSpecificCharacteristic{
		{CharacteristicUUID: uuid.New(), Value: []byte{0xBE, 0xEF}},
	})
	if err != nil {
		return
	}
	vendorData, err := ras.DecodeBootstrapData(blob)
	if err != nil {
		return
	}

	c.m.HandleRasClientConnectedEvent(ras.ConnectedEvent{
		Address:          peer.address,
		ConnectionHandle: peer.connectionHandle,
		AttHandle:        0x25,
		VendorData:       vendorData,
		ConnInterval:     peer.connInterval,
	})
}

func (c *console) cmdStop(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(c.rl.Stdout(), "Usage: stop <addr>")
		return
	}
	peer, ok := c.findPeer(args[0])
	if !ok {
		fmt.Fprintf(c.rl.Stdout(), "Unknown peer: %s\n", args[0])
		return
	}
	c.m.StopDistanceMeasurement(peer.address)
}

func (c *console) cmdStatus() {
	fmt.Fprintln(c.rl.Stdout(), "\nMeasurement Status:")
	fmt.Fprintln(c.rl.Stdout(), "-------------------------------------------")
	c.mu.Lock()
	for _, p := range c.peers {
		status, ok := c.status[p.address]
		if !ok {
			status = "idle"
		}
		fmt.Fprintf(c.rl.Stdout(), "  %s  %s\n", p.address, status)
	}
	c.mu.Unlock()
	fmt.Fprintln(c.rl.Stdout())
}

// findPeer matches a full or partial address, case-insensitive.
func (c *console) findPeer(s string) (simPeer, bool) {
	needle := strings.ToUpper(s)
	for _, p := range c.peers {
		if strings.Contains(p.address.String(), needle) {
			return p, true
		}
	}
	return simPeer{}, false
}

func (c *console) setStatus(address hci.Address, status string) {
	c.mu.Lock()
	c.status[address] = status
	c.mu.Unlock()
}

// OnDistanceMeasurementStarted implements ranging.Callbacks.
func (c *console) OnDistanceMeasurementStarted(address hci.Address, method ranging.Method) {
	c.setStatus(address, "active")
	fmt.Fprintf(c.rl.Stdout(), "\n[%s] %s: measurement started (%s)\n",
		time.Now().Format("15:04:05"), address, method)
	c.rl.Refresh()
}

// OnDistanceMeasurementResult implements ranging.Callbacks.
func (c *console) OnDistanceMeasurementResult(result ranging.Result) {
	fmt.Fprintf(c.rl.Stdout(), "\n[%s] %s: %.2f m (confidence %.0f%%)\n",
		time.Now().Format("15:04:05"), result.Address,
		result.DistanceMeters, result.ConfidenceLevel*100)
	c.rl.Refresh()
}

// OnDistanceMeasurementStopped implements ranging.Callbacks.
func (c *console) OnDistanceMeasurementStopped(address hci.Address, reason ranging.Reason, method ranging.Method) {
	c.setStatus(address, fmt.Sprintf("stopped (%s)", reason))
	fmt.Fprintf(c.rl.Stdout(), "\n[%s] %s: measurement stopped: %s\n",
		time.Now().Format("15:04:05"), address, reason)
	c.rl.Refresh()
}
