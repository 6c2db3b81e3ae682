package machine

import (
	"fmt"

	"github.com/ezrec/rasmvm/word"
)

// Event names, as delivered to observers.
const (
	EVENT_MEMORY      = "memory-changed"
	EVENT_REGISTER    = "register-changed"
	EVENT_IP          = "ip-changed"
	EVENT_SP          = "sp-changed"
	EVENT_ZERO        = "zero-flag-changed"
	EVENT_CARRY       = "carry-flag-changed"
	EVENT_STEP        = "step-completed"
	EVENT_HALTED      = "halted-changed"
	EVENT_INTERRUPTED = "interrupted-changed"
	EVENT_RESET       = "reset"
)

// Event is a state change notification.
type Event interface {
	// Names returns the event names this notification is delivered under,
	// global name first.
	Names() []string
}

// MemoryChanged is emitted by a memory write.
type MemoryChanged struct {
	Address uint8 // Address written.
	Value   uint8 // Value stored.
	Raw     int   // Value requested, before clamping.
}

func (ev MemoryChanged) Names() []string {
	return []string{EVENT_MEMORY, fmt.Sprintf("%v:%d", EVENT_MEMORY, ev.Address)}
}

// RegisterChanged is emitted by a register write.
type RegisterChanged struct {
	Register Register // Register written.
	Value    uint8    // Value stored.
	Raw      int      // Value requested, before clamping.
}

func (ev RegisterChanged) Names() []string {
	return []string{EVENT_REGISTER, fmt.Sprintf("%v:%d", EVENT_REGISTER, int(ev.Register))}
}

// IpChanged is emitted by an instruction pointer write.
type IpChanged struct {
	Value uint8
	Raw   int
}

func (ev IpChanged) Names() []string { return []string{EVENT_IP} }

// SpChanged is emitted by a stack pointer write.
type SpChanged struct {
	Value uint8
	Raw   int
}

func (ev SpChanged) Names() []string { return []string{EVENT_SP} }

type ZeroFlagChanged struct {
	Value word.Bit
}

func (ev ZeroFlagChanged) Names() []string { return []string{EVENT_ZERO} }

type CarryFlagChanged struct {
	Value word.Bit
}

func (ev CarryFlagChanged) Names() []string { return []string{EVENT_CARRY} }

// StepCompleted is emitted at the end of every instruction step.
type StepCompleted struct{}

func (ev StepCompleted) Names() []string { return []string{EVENT_STEP} }

type HaltedChanged struct {
	Halted bool
}

func (ev HaltedChanged) Names() []string { return []string{EVENT_HALTED} }

type InterruptedChanged struct {
	Interrupted bool
}

func (ev InterruptedChanged) Names() []string { return []string{EVENT_INTERRUPTED} }

// Reset is emitted after the machine has been reinitialized.
type Reset struct{}

func (ev Reset) Names() []string { return []string{EVENT_RESET} }

// listeners is an ordered list of typed observers.
type listeners[T Event] []func(ev T)

func (ls listeners[T]) emit(ev T) {
	for _, fn := range ls {
		fn(ev)
	}
}

// Events is the observer registry of a Machine. Observers are called
// synchronously, in subscription order, before the mutating call returns.
// Subscribing from inside an observer is not supported.
type Events struct {
	any         listeners[Event]
	memory      listeners[MemoryChanged]
	memoryAt    [MEMORY_SIZE]listeners[MemoryChanged]
	register    listeners[RegisterChanged]
	registerAt  [REGISTER_COUNT]listeners[RegisterChanged]
	ip          listeners[IpChanged]
	sp          listeners[SpChanged]
	zero        listeners[ZeroFlagChanged]
	carry       listeners[CarryFlagChanged]
	step        listeners[StepCompleted]
	halted      listeners[HaltedChanged]
	interrupted listeners[InterruptedChanged]
	reset       listeners[Reset]
}

// OnAny observes every event, after the observers for that specific event.
func (evs *Events) OnAny(fn func(ev Event)) { evs.any = append(evs.any, fn) }

// OnMemory observes writes to any memory address.
func (evs *Events) OnMemory(fn func(ev MemoryChanged)) { evs.memory = append(evs.memory, fn) }

// OnMemoryAt observes writes to a single memory address.
func (evs *Events) OnMemoryAt(address uint8, fn func(ev MemoryChanged)) {
	evs.memoryAt[address] = append(evs.memoryAt[address], fn)
}

// OnRegister observes writes to any register.
func (evs *Events) OnRegister(fn func(ev RegisterChanged)) { evs.register = append(evs.register, fn) }

// OnRegisterAt observes writes to a single register.
func (evs *Events) OnRegisterAt(reg Register, fn func(ev RegisterChanged)) (err error) {
	if !reg.Valid() {
		err = ErrRegisterInvalid
		return
	}
	evs.registerAt[reg] = append(evs.registerAt[reg], fn)
	return
}

func (evs *Events) OnIp(fn func(ev IpChanged)) { evs.ip = append(evs.ip, fn) }

func (evs *Events) OnSp(fn func(ev SpChanged)) { evs.sp = append(evs.sp, fn) }

func (evs *Events) OnZeroFlag(fn func(ev ZeroFlagChanged)) { evs.zero = append(evs.zero, fn) }

func (evs *Events) OnCarryFlag(fn func(ev CarryFlagChanged)) { evs.carry = append(evs.carry, fn) }

// OnStep observes the end of every instruction step.
func (evs *Events) OnStep(fn func(ev StepCompleted)) { evs.step = append(evs.step, fn) }

func (evs *Events) OnHalted(fn func(ev HaltedChanged)) { evs.halted = append(evs.halted, fn) }

func (evs *Events) OnInterrupted(fn func(ev InterruptedChanged)) {
	evs.interrupted = append(evs.interrupted, fn)
}

func (evs *Events) OnReset(fn func(ev Reset)) { evs.reset = append(evs.reset, fn) }

func (evs *Events) emitAny(ev Event) {
	evs.any.emit(ev)
}

func (evs *Events) emitMemory(ev MemoryChanged) {
	evs.memory.emit(ev)
	evs.memoryAt[ev.Address].emit(ev)
	evs.emitAny(ev)
}

func (evs *Events) emitRegister(ev RegisterChanged) {
	evs.register.emit(ev)
	evs.registerAt[ev.Register].emit(ev)
	evs.emitAny(ev)
}

func (evs *Events) emitIp(ev IpChanged) {
	evs.ip.emit(ev)
	evs.emitAny(ev)
}

func (evs *Events) emitSp(ev SpChanged) {
	evs.sp.emit(ev)
	evs.emitAny(ev)
}

func (evs *Events) emitZero(ev ZeroFlagChanged) {
	evs.zero.emit(ev)
	evs.emitAny(ev)
}

func (evs *Events) emitCarry(ev CarryFlagChanged) {
	evs.carry.emit(ev)
	evs.emitAny(ev)
}

func (evs *Events) emitStep(ev StepCompleted) {
	evs.step.emit(ev)
	evs.emitAny(ev)
}

func (evs *Events) emitHalted(ev HaltedChanged) {
	evs.halted.emit(ev)
	evs.emitAny(ev)
}

func (evs *Events) emitInterrupted(ev InterruptedChanged) {
	evs.interrupted.emit(ev)
	evs.emitAny(ev)
}

func (evs *Events) emitReset(ev Reset) {
	evs.reset.emit(ev)
	evs.emitAny(ev)
}
