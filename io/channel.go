// Package io provides the byte-level devices that system interrupts attach
// to the virtual CPU.
package io

// Channel is a byte-level device reachable from interrupt handlers.
type Channel interface {
	// Rewind resets the channel to its initial state, where possible.
	Rewind()
	// Receive reads the next byte from the channel.
	Receive() (value byte, err error)
	// Send writes a single byte to the channel.
	Send(value byte) error
}
