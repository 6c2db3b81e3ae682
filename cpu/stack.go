package cpu

import (
	"github.com/ezrec/rasmvm/machine"
)

// Stack is the descending call and data stack held in machine memory.
// SP names the next free cell.
type Stack struct {
	Machine *machine.Machine
}

// Push stores value at SP, then moves SP down.
func (s Stack) Push(value int) {
	m := s.Machine
	m.WriteMemory(m.Sp(), value)
	m.WriteSp(int(m.Sp()) - 1)
}

// Pop moves SP up, then returns the value at SP.
func (s Stack) Pop() (value uint8) {
	m := s.Machine
	m.WriteSp(int(m.Sp()) + 1)
	value = m.Memory(m.Sp())
	return
}

// Depth returns the number of values pushed since reset. It goes negative
// when more values are popped than pushed.
func (s Stack) Depth() int {
	return machine.SP_INITIAL - int(s.Machine.Sp())
}

// Empty returns true when nothing remains to pop.
func (s Stack) Empty() bool {
	return s.Depth() <= 0
}

// Peek returns the most recently pushed value, without changing SP.
func (s Stack) Peek() (value uint8, ok bool) {
	if s.Empty() {
		return
	}

	m := s.Machine
	return m.Memory(m.Sp() + 1), true
}
