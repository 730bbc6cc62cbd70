package hci

// LeEventHandler handles a decoded LE meta subevent.
type LeEventHandler interface {
	HandleLeEvent(ev LeEvent)
}

// LeEventHandlerFunc adapts a function to the LeEventHandler interface.
type LeEventHandlerFunc func(ev LeEvent)

// HandleLeEvent implements LeEventHandler.
func (f LeEventHandlerFunc) HandleLeEvent(ev LeEvent) { f(ev) }

// CommandChannel is the command path of an HCI transport.
//
// Implementations may deliver completions and subevents on their own
// goroutines; callers that confine state to a serialization context must
// hand off inside the callback.
type CommandChannel interface {
	// EnqueueCommand submits cmd to the controller. done is invoked exactly
	// once with the Command Status or Command Complete event that terminates
	// the command.
	EnqueueCommand(cmd Command, done func(CommandResult))

	// SetLeEventHandler registers h for a subevent code and returns the
	// previously registered handler, if any. Passing a nil handler
	// unregisters the code.
	SetLeEventHandler(code SubeventCode, h LeEventHandler) LeEventHandler
}
