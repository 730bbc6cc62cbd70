// Package hci defines the host side of the HCI boundary used by the
// distance measurement stack.
//
// The package deliberately stops at typed commands and events: it models the
// LE Channel Sounding (CS) command families and their completion events as
// Go structs, and abstracts the transport behind the CommandChannel
// interface. Packet framing, opcode encoding and the socket/UART plumbing
// belong to the transport implementation, not to this package.
//
// # Command flow
//
// Every HCI command terminates in exactly one of two controller responses:
//
//   - A Command Complete event carrying the command's return parameters.
//   - A Command Status event, for commands whose real outcome arrives later
//     as an LE meta subevent (remote capability reads, config creation,
//     security enable, procedure enable).
//
// CommandChannel.EnqueueCommand delivers whichever of the two terminates the
// command as a CommandResult. LE meta subevents are dispatched to handlers
// registered per subevent code with SetLeEventHandler.
package hci
