// Package hcifake provides an in-memory hci.CommandChannel for tests and
// simulations. Enqueued commands are captured in FIFO order; the user of the
// fake plays the controller by injecting Command Status, Command Complete
// and LE meta events.
package hcifake

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/Neoteric-OS/android-packages-modules-Bluetooth/pkg/hci"
)

// DefaultCommandTimeout bounds how long GetCommand waits for a command to be
// enqueued.
const DefaultCommandTimeout = time.Second

// ErrNoCommand is returned when no command arrives within the timeout.
var ErrNoCommand = errors.New("hcifake: no command enqueued")

// Channel is a fake hci.CommandChannel.
// The zero value is not usable; create one with New.
type Channel struct {
	mu       sync.Mutex
	queue    chan hci.Command
	pending  map[hci.OpCode][]func(hci.CommandResult)
	handlers map[hci.SubeventCode]hci.LeEventHandler
}

// New creates an empty fake channel.
func New() *Channel {
	return &Channel{
		queue:    make(chan hci.Command, 64),
		pending:  make(map[hci.OpCode][]func(hci.CommandResult)),
		handlers: make(map[hci.SubeventCode]hci.LeEventHandler),
	}
}

// EnqueueCommand implements hci.CommandChannel.
func (c *Channel) EnqueueCommand(cmd hci.Command, done func(hci.CommandResult)) {
	c.mu.Lock()
	c.pending[cmd.Opcode()] = append(c.pending[cmd.Opcode()], done)
	c.mu.Unlock()
	c.queue <- cmd
}

// SetLeEventHandler implements hci.CommandChannel.
func (c *Channel) SetLeEventHandler(code hci.SubeventCode, h hci.LeEventHandler) hci.LeEventHandler {
	c.mu.Lock()
	defer c.mu.Unlock()
	old := c.handlers[code]
	if h == nil {
		delete(c.handlers, code)
	} else {
		c.handlers[code] = h
	}
	return old
}

// GetCommand waits up to DefaultCommandTimeout for the next enqueued command
// and verifies its opcode.
func (c *Channel) GetCommand(op hci.OpCode) (hci.Command, error) {
	select {
	case cmd := <-c.queue:
		if cmd.Opcode() != op {
			return nil, fmt.Errorf("hcifake: got command %v, want %v", cmd.Opcode(), op)
		}
		return cmd, nil
	case <-time.After(DefaultCommandTimeout):
		return nil, fmt.Errorf("%w: want %v", ErrNoCommand, op)
	}
}

// NextCommand waits up to timeout for the next enqueued command regardless
// of opcode.
func (c *Channel) NextCommand(timeout time.Duration) (hci.Command, error) {
	select {
	case cmd := <-c.queue:
		return cmd, nil
	case <-time.After(timeout):
		return nil, ErrNoCommand
	}
}

// PendingCommands returns the number of captured commands not yet consumed
// by GetCommand/NextCommand.
func (c *Channel) PendingCommands() int {
	return len(c.queue)
}

// IncomingCommandStatus injects a Command Status event terminating the
// oldest outstanding command with the given opcode.
func (c *Channel) IncomingCommandStatus(op hci.OpCode, status hci.ErrorCode) {
	c.complete(op, hci.CommandResult{Opcode: op, Status: status})
}

// IncomingCommandComplete injects a Command Complete event terminating the
// oldest outstanding command with the given opcode. complete carries the
// opcode-specific return parameters.
func (c *Channel) IncomingCommandComplete(op hci.OpCode, status hci.ErrorCode, complete any) {
	c.complete(op, hci.CommandResult{Opcode: op, Status: status, Complete: complete})
}

// IncomingLeMetaEvent dispatches an LE meta subevent to the registered
// handler. Events with no handler are dropped, matching a transport that
// masks unrequested subevents.
func (c *Channel) IncomingLeMetaEvent(ev hci.LeEvent) {
	c.mu.Lock()
	h := c.handlers[ev.Subevent()]
	c.mu.Unlock()
	if h != nil {
		h.HandleLeEvent(ev)
	}
}

func (c *Channel) complete(op hci.OpCode, result hci.CommandResult) {
	c.mu.Lock()
	callbacks := c.pending[op]
	if len(callbacks) == 0 {
		c.mu.Unlock()
		panic(fmt.Sprintf("hcifake: no outstanding %v command", op))
	}
	done := callbacks[0]
	c.pending[op] = callbacks[1:]
	c.mu.Unlock()
	done(result)
}

var _ hci.CommandChannel = (*Channel)(nil)
