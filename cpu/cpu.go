package cpu

import (
	"errors"
	"fmt"
	"log"

	"github.com/ezrec/rasmvm/interrupt"
	"github.com/ezrec/rasmvm/machine"
	"github.com/ezrec/rasmvm/word"
)

// Cpu is the execution engine stepping a machine.
type Cpu struct {
	Verbose bool // Set to enable verbose logging.

	Machine    *machine.Machine // Architectural state.
	Interrupts *interrupt.Table // Interrupt dispatch table.
	Stack      Stack            // Stack view of Machine memory.

	Ticks int // Instructions executed.

	pending <-chan struct{} // Completion of the last dispatched interrupt.
}

// NewCpu creates an engine over a machine and an interrupt table.
// A nil table dispatches nothing.
func NewCpu(m *machine.Machine, interrupts *interrupt.Table) (cpu *Cpu) {
	if interrupts == nil {
		interrupts = interrupt.NewTable()
	}

	cpu = &Cpu{
		Machine:    m,
		Interrupts: interrupts,
		Stack:      Stack{Machine: m},
	}

	return
}

// Reset the machine and the engine statistics.
func (cpu *Cpu) Reset() {
	if cpu.Verbose {
		log.Printf("cpu: reset")
	}

	cpu.Machine.Reset()
	cpu.Ticks = 0
	cpu.pending = nil
}

// Pending returns the completion channel of the interrupt dispatched by the
// last step, or nil if that step dispatched none.
func (cpu *Cpu) Pending() <-chan struct{} {
	return cpu.pending
}

// String returns the current CPU state as a string.
func (cpu *Cpu) String() (text string) {
	m := cpu.Machine

	regs := []string{
		"ip", "sp",
		"z", "c",
		"r0", "r1", "r2", "r3",
		"stack",
	}
	for _, reg := range regs {
		var strval string
		switch reg {
		case "ip":
			strval = fmt.Sprintf("%02x", m.Ip())
		case "sp":
			strval = fmt.Sprintf("%02x", m.Sp())
		case "z":
			strval = fmt.Sprintf("%d", m.ZeroFlag())
		case "c":
			strval = fmt.Sprintf("%d", m.CarryFlag())
		case "r0", "r1", "r2", "r3":
			strval = fmt.Sprintf("%02x", m.Register(machine.Register(reg[1]-'0')))
		case "stack":
			val, ok := cpu.Stack.Peek()
			if ok {
				strval = fmt.Sprintf("%02x", val)
			} else {
				strval = "--"
			}
		}
		text += fmt.Sprintf("% 5s: %v\n", reg, strval)
	}

	return
}

// FetchCode returns the instruction at IP. The operand address wraps.
func (cpu *Cpu) FetchCode() (code Code) {
	m := cpu.Machine
	ip := m.Ip()

	code = Code{
		Opcode:  m.Memory(ip),
		Operand: m.Memory(ip + 1),
	}

	return
}

// Step executes one instruction. A halted machine only completes the step.
// Stepping while an interrupt is in flight is refused.
func (cpu *Cpu) Step() (err error) {
	m := cpu.Machine

	if m.Interrupted() {
		err = ErrInterruptPending
		return
	}

	defer m.CompleteStep()

	cpu.pending = nil

	if m.Halted() {
		return
	}

	err = cpu.Execute(cpu.FetchCode())

	return
}

// Execute executes a single decoded instruction located at IP.
func (cpu *Cpu) Execute(code Code) (err error) {
	m := cpu.Machine

	defer func() {
		if err != nil {
			err = errors.Join(ErrOpcode(code), err)
		}
	}()
	if cpu.Verbose {
		log.Printf("%02x: %v", m.Ip(), code)
	}

	m.WriteIp(int(m.Ip()) + 2)

	reg := code.Register()
	acc := int(m.Register(reg))

	switch code.Op() {
	case OP_HALT:
		m.WriteHalted(true)
	case OP_INTERRUPT:
		pending, ok := cpu.Interrupts.Dispatch(code.Operand, m)
		if ok {
			cpu.pending = pending
		}
	case OP_COMPARE:
		m.WriteZeroFlag(word.BitOf(acc == int(cpu.getValue(code))))
	case OP_JUMP:
		m.WriteIp(int(code.Operand))
	case OP_CALL:
		target := cpu.getValue(code)
		cpu.Stack.Push(int(m.Ip()))
		m.WriteIp(int(target))
	case OP_RETURN:
		m.WriteIp(int(cpu.Stack.Pop()))
	case OP_CONDJUMP:
		if cpu.condition(code.Cond()) {
			m.WriteIp(int(code.Operand))
		}
	case OP_LOAD:
		err = m.WriteRegister(reg, int(cpu.getValue(code)))
	case OP_STORE:
		var address uint8
		address, err = cpu.getAddress(code)
		if err != nil {
			break
		}
		m.WriteMemory(address, acc)
	case OP_ADD:
		err = m.WriteRegister(reg, acc+int(cpu.getValue(code)))
	case OP_SUBTRACT:
		err = m.WriteRegister(reg, acc-int(cpu.getValue(code)))
	case OP_AND:
		err = m.WriteRegister(reg, acc&int(cpu.getValue(code)))
	case OP_OR:
		err = m.WriteRegister(reg, acc|int(cpu.getValue(code)))
	case OP_XOR:
		err = m.WriteRegister(reg, acc^int(cpu.getValue(code)))
	case OP_UNARY:
		err = cpu.doUnary(code.UnaryOp(), code.Alt())
	case OP_STACK:
		switch code.StackOp() {
		case STACK_PUSH:
			cpu.Stack.Push(acc)
		case STACK_POP:
			err = m.WriteRegister(reg, int(cpu.Stack.Pop()))
		}
	default:
		err = ErrOpcodeDecode
	}

	cpu.Ticks++

	return
}

// getValue resolves the value operand of an instruction.
func (cpu *Cpu) getValue(code Code) (value uint8) {
	m := cpu.Machine

	switch code.Mode() {
	case AM_REGISTER:
		value = m.Register(code.Alt())
	case AM_CONSTANT:
		value = code.Operand
	case AM_ADDRESS:
		value = m.Memory(code.Operand)
	case AM_INDEX:
		value = m.Memory(m.Register(code.Alt()))
	}

	return
}

// getAddress resolves the memory address operand of an instruction.
func (cpu *Cpu) getAddress(code Code) (address uint8, err error) {
	switch code.Mode() {
	case AM_ADDRESS:
		address = code.Operand
	case AM_INDEX:
		address = cpu.Machine.Register(code.Alt())
	default:
		err = ErrOpcodeStore
	}

	return
}

func (cpu *Cpu) condition(cond CodeCond) (ok bool) {
	m := cpu.Machine

	switch cond {
	case COND_Z:
		ok = m.ZeroFlag() == word.SET
	case COND_NZ:
		ok = m.ZeroFlag() == word.CLEAR
	case COND_C:
		ok = m.CarryFlag() == word.SET
	case COND_NC:
		ok = m.CarryFlag() == word.CLEAR
	}

	return
}

// doUnary applies op to reg. Results go through the register clamp, so NOT
// always sets carry and ASL carries out bit 7.
func (cpu *Cpu) doUnary(op CodeUnaryOp, reg machine.Register) (err error) {
	m := cpu.Machine
	value := int(m.Register(reg))

	switch op {
	case UNARY_INC:
		value++
	case UNARY_DEC:
		value--
	case UNARY_NOT:
		value = ^value
	case UNARY_ASL:
		value <<= 1
	case UNARY_ASR:
		value >>= 1
	default:
		err = ErrOpcodeUnary
		return
	}

	err = m.WriteRegister(reg, value)

	return
}
