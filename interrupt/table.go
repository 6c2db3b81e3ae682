// Package interrupt maps interrupt ids to handlers and dispatches them with
// an asynchronous, exactly-once completion signal.
package interrupt

import (
	"iter"
	"log"
	"sync"

	"github.com/ezrec/rasmvm/machine"
)

// Done signals that an interrupt handler has finished. Only the first call
// has an effect.
type Done func()

// Handler services an interrupt. It may read and write the machine, and
// must eventually call done exactly once, either before returning or later
// from another goroutine. Until then the machine stays interrupted.
type Handler interface {
	Interrupt(m *machine.Machine, done Done)
}

// HandlerFunc adapts a function to a Handler.
type HandlerFunc func(m *machine.Machine, done Done)

func (fn HandlerFunc) Interrupt(m *machine.Machine, done Done) {
	fn(m, done)
}

// Table maps interrupt ids to handlers. Handlers are registered at setup
// time, before dispatching starts.
type Table struct {
	Verbose bool // Set to enable verbose logging.

	handler [256]Handler
}

// NewTable creates an empty interrupt table.
func NewTable() *Table {
	return &Table{}
}

// Defines returns the ids of the system interrupts.
func (t *Table) Defines() iter.Seq2[string, string] {
	return systemDefines()
}

// Register installs h for id, replacing any previous handler.
func (t *Table) Register(id uint8, h Handler) {
	t.handler[id] = h
}

// Unregister removes the handler for id.
func (t *Table) Unregister(id uint8) {
	t.handler[id] = nil
}

// Lookup returns the handler for id.
func (t *Table) Lookup(id uint8) (h Handler, ok bool) {
	h = t.handler[id]
	ok = h != nil
	return
}

// Dispatch invokes the handler for id against m.
//
// An id with no handler is ignored: the machine is left untouched and ok is
// false. Otherwise the machine is marked interrupted, the handler is
// invoked, and pending is closed once the handler signals completion, at
// which point the machine is no longer interrupted.
func (t *Table) Dispatch(id uint8, m *machine.Machine) (pending <-chan struct{}, ok bool) {
	h := t.handler[id]
	if h == nil {
		if t.Verbose {
			log.Printf("interrupt: 0x%02x ignored", id)
		}
		return
	}

	complete := make(chan struct{})
	var once sync.Once
	done := func() {
		once.Do(func() {
			m.WriteInterrupted(false)
			if t.Verbose {
				log.Printf("interrupt: 0x%02x done", id)
			}
			close(complete)
		})
	}

	if t.Verbose {
		log.Printf("interrupt: 0x%02x dispatch", id)
	}

	m.WriteInterrupted(true)
	pending = complete
	ok = true

	h.Interrupt(m, done)

	return
}
