package io

import (
	"io"
	"sync"
)

// Tape provides sequential byte I/O over an io.Reader for input and an
// io.Writer for output. A Tape may be read and written from different
// goroutines.
type Tape struct {
	Input  io.Reader
	Output io.Writer

	mutex sync.Mutex
}

var _ Channel = (*Tape)(nil)

// Rewind seeks the input back to its start, if the input can seek.
// Output is never rewound.
func (tc *Tape) Rewind() {
	tc.mutex.Lock()
	defer tc.mutex.Unlock()

	seeker, ok := tc.Input.(io.Seeker)
	if ok {
		seeker.Seek(0, io.SeekStart)
	}
}

// Receive reads one byte from the input. It returns io.EOF at the end of
// input, and ErrChannelMissing if there is no input.
func (tc *Tape) Receive() (value byte, err error) {
	tc.mutex.Lock()
	defer tc.mutex.Unlock()

	if tc.Input == nil {
		err = ErrChannelMissing
		return
	}

	var one [1]byte
	_, err = io.ReadFull(tc.Input, one[:])
	if err != nil {
		return
	}

	value = one[0]
	return
}

// Send writes one byte to the output.
func (tc *Tape) Send(value byte) (err error) {
	tc.mutex.Lock()
	defer tc.mutex.Unlock()

	if tc.Output == nil {
		err = ErrChannelMissing
		return
	}

	_, err = tc.Output.Write([]byte{value})
	return
}
