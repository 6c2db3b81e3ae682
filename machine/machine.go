// Package machine holds the architectural state of the virtual CPU: memory,
// registers, pointers and flags.
//
// Every field is private and mutated only through the Write* operations,
// each of which clamps its value to a machine word and notifies the
// observers registered on Events before returning. An observer therefore
// sees every change to the machine.
//
// A Machine is not safe for concurrent use. At any time exactly one
// logical thread of control (the stepping loop, or an in-flight interrupt
// handler) may mutate it.
package machine

import (
	"iter"
	"maps"

	"github.com/ezrec/rasmvm/word"
)

// Machine is the state of the virtual CPU.
type Machine struct {
	Events Events // Observer registry.

	memory      [MEMORY_SIZE]uint8
	register    [REGISTER_COUNT]uint8
	ip          uint8
	sp          uint8
	zero        word.Bit
	carry       word.Bit
	halted      bool
	interrupted bool
}

// Snapshot is a comparable copy of the machine state.
type Snapshot struct {
	Memory      [MEMORY_SIZE]uint8
	Register    [REGISTER_COUNT]uint8
	Ip          uint8
	Sp          uint8
	Zero        word.Bit
	Carry       word.Bit
	Halted      bool
	Interrupted bool
}

// NewMachine creates a machine in its reset state.
func NewMachine() (m *Machine) {
	m = &Machine{}
	m.init()

	return
}

// Defines for the machine.
func (m *Machine) Defines() iter.Seq2[string, string] {
	return maps.All(_machine_defines)
}

func (m *Machine) init() {
	clear(m.memory[:])
	clear(m.register[:])
	m.ip = IP_INITIAL
	m.sp = SP_INITIAL
	m.zero = word.CLEAR
	m.carry = word.CLEAR
	m.halted = false
	m.interrupted = false
}

// Reset reinitializes the machine to its construction defaults. Observers
// stay registered. The caller must ensure no interrupt handler is in
// flight.
func (m *Machine) Reset() {
	m.init()
	m.Events.emitReset(Reset{})
}

// Memory returns the byte at address.
func (m *Machine) Memory(address uint8) uint8 {
	return m.memory[address]
}

// Register returns the value of reg. Panics if reg is out of range.
func (m *Machine) Register(reg Register) uint8 {
	return m.register[reg]
}

func (m *Machine) Ip() uint8 { return m.ip }

func (m *Machine) Sp() uint8 { return m.sp }

func (m *Machine) ZeroFlag() word.Bit { return m.zero }

func (m *Machine) CarryFlag() word.Bit { return m.carry }

// Halted returns true once a HALT has executed, until the next reset.
func (m *Machine) Halted() bool { return m.halted }

// Interrupted returns true while an interrupt handler is in flight.
func (m *Machine) Interrupted() bool { return m.interrupted }

// Snapshot copies the machine state.
func (m *Machine) Snapshot() Snapshot {
	return Snapshot{
		Memory:      m.memory,
		Register:    m.register,
		Ip:          m.ip,
		Sp:          m.sp,
		Zero:        m.zero,
		Carry:       m.carry,
		Halted:      m.halted,
		Interrupted: m.interrupted,
	}
}

// WriteMemory stores value, clamped to a machine word, at address.
// Any carry out of the clamp is discarded.
func (m *Machine) WriteMemory(address uint8, value int) {
	stored, _ := word.Limit8(value)
	m.memory[address] = stored

	m.Events.emitMemory(MemoryChanged{Address: address, Value: stored, Raw: value})
}

// WriteRegister stores value, clamped to a machine word, in reg, and sets
// the carry flag if the clamp over- or under-flowed.
func (m *Machine) WriteRegister(reg Register, value int) (err error) {
	if !reg.Valid() {
		err = ErrRegisterInvalid
		return
	}

	stored, carry := word.Limit8(value)
	m.register[reg] = stored
	m.WriteCarryFlag(carry)

	m.Events.emitRegister(RegisterChanged{Register: reg, Value: stored, Raw: value})

	return
}

// WriteIp sets the instruction pointer.
func (m *Machine) WriteIp(value int) {
	m.ip, _ = word.Limit8(value)

	m.Events.emitIp(IpChanged{Value: m.ip, Raw: value})
}

// WriteSp sets the stack pointer.
func (m *Machine) WriteSp(value int) {
	m.sp, _ = word.Limit8(value)

	m.Events.emitSp(SpChanged{Value: m.sp, Raw: value})
}

// WriteZeroFlag sets the zero flag. Any non-zero bit is stored as SET.
func (m *Machine) WriteZeroFlag(bit word.Bit) {
	m.zero = word.BitOf(bit.Bool())

	m.Events.emitZero(ZeroFlagChanged{Value: m.zero})
}

// WriteCarryFlag sets the carry flag. Any non-zero bit is stored as SET.
func (m *Machine) WriteCarryFlag(bit word.Bit) {
	m.carry = word.BitOf(bit.Bool())

	m.Events.emitCarry(CarryFlagChanged{Value: m.carry})
}

// WriteHalted sets the halted status.
func (m *Machine) WriteHalted(halted bool) {
	m.halted = halted

	m.Events.emitHalted(HaltedChanged{Halted: halted})
}

// WriteInterrupted sets the interrupt-in-flight status.
func (m *Machine) WriteInterrupted(interrupted bool) {
	m.interrupted = interrupted

	m.Events.emitInterrupted(InterruptedChanged{Interrupted: interrupted})
}

// CompleteStep notifies observers that an instruction step has finished.
func (m *Machine) CompleteStep() {
	m.Events.emitStep(StepCompleted{})
}
