package cpu

import (
	"fmt"

	"github.com/ezrec/rasmvm/machine"
)

// CodeOp is the operation field of an opcode byte.
type CodeOp int

//go:generate go tool stringer -linecomment -type=CodeOp
const (
	OP_HALT      = CodeOp(0x0) // hlt
	OP_INTERRUPT = CodeOp(0x1) // int
	OP_COMPARE   = CodeOp(0x2) // cmp
	OP_JUMP      = CodeOp(0x3) // jmp
	OP_CALL      = CodeOp(0x4) // call
	OP_RETURN    = CodeOp(0x5) // ret
	OP_CONDJUMP  = CodeOp(0x6) // jcc
	OP_LOAD      = CodeOp(0x7) // ld
	OP_STORE     = CodeOp(0x8) // st
	OP_ADD       = CodeOp(0x9) // add
	OP_SUBTRACT  = CodeOp(0xa) // sub
	OP_AND       = CodeOp(0xb) // and
	OP_OR        = CodeOp(0xc) // or
	OP_XOR       = CodeOp(0xd) // xor
	OP_UNARY     = CodeOp(0xe) // unary
	OP_STACK     = CodeOp(0xf) // stack
)

// CodeMode is the addressing mode of an opcode byte.
type CodeMode int

//go:generate go tool stringer -linecomment -type=CodeMode
const (
	AM_REGISTER = CodeMode(0) // reg
	AM_CONSTANT = CodeMode(1) // const
	AM_ADDRESS  = CodeMode(2) // addr
	AM_INDEX    = CodeMode(3) // index
)

// CodeCond is the condition of a conditional jump.
type CodeCond int

//go:generate go tool stringer -linecomment -type=CodeCond
const (
	COND_Z  = CodeCond(0) // jz
	COND_NZ = CodeCond(1) // jnz
	COND_C  = CodeCond(2) // jc
	COND_NC = CodeCond(3) // jnc
)

// CodeUnaryOp is a unary operation type.
type CodeUnaryOp int

//go:generate go tool stringer -linecomment -type=CodeUnaryOp
const (
	UNARY_INC = CodeUnaryOp(0) // inc
	UNARY_DEC = CodeUnaryOp(1) // dec
	UNARY_NOT = CodeUnaryOp(2) // not
	UNARY_ASL = CodeUnaryOp(3) // asl
	UNARY_ASR = CodeUnaryOp(4) // asr
)

// CodeStackOp is a stack operation type.
type CodeStackOp int

//go:generate go tool stringer -linecomment -type=CodeStackOp
const (
	STACK_PUSH = CodeStackOp(0) // push
	STACK_POP  = CodeStackOp(1) // pop
)

// Code is a single two byte instruction.
type Code struct {
	Opcode  uint8
	Operand uint8
}

// MakeCode creates an instruction from its fields.
func MakeCode(op CodeOp, reg machine.Register, mode CodeMode, operand uint8) Code {
	return Code{
		Opcode:  (uint8(op)&0xf)<<4 | (uint8(reg)&0x3)<<2 | (uint8(mode) & 0x3),
		Operand: operand,
	}
}

// MakeCodeHalt creates a halt instruction.
func MakeCodeHalt() Code {
	return MakeCode(OP_HALT, machine.R0, AM_REGISTER, 0)
}

// MakeCodeInterrupt creates an instruction dispatching interrupt id.
func MakeCodeInterrupt(id uint8) Code {
	return MakeCode(OP_INTERRUPT, machine.R0, AM_CONSTANT, id)
}

// MakeCodeJump creates an unconditional jump to target.
func MakeCodeJump(target uint8) Code {
	return MakeCode(OP_JUMP, machine.R0, AM_CONSTANT, target)
}

// MakeCodeReturn creates a subroutine return.
func MakeCodeReturn() Code {
	return MakeCode(OP_RETURN, machine.R0, AM_REGISTER, 0)
}

// MakeCodeCond creates a conditional jump to target.
func MakeCodeCond(cond CodeCond, target uint8) Code {
	return Code{
		Opcode:  uint8(OP_CONDJUMP)<<4 | (uint8(cond) & 0x3),
		Operand: target,
	}
}

// MakeCodeUnary creates a unary operation on reg.
func MakeCodeUnary(op CodeUnaryOp, reg machine.Register) Code {
	return Code{
		Opcode:  uint8(OP_UNARY)<<4 | (uint8(op) & 0x7),
		Operand: uint8(reg) & 0x3,
	}
}

// MakeCodeStack creates a push or pop of reg.
func MakeCodeStack(op CodeStackOp, reg machine.Register) Code {
	return Code{
		Opcode: uint8(OP_STACK)<<4 | (uint8(reg)&0x3)<<2 | (uint8(op) & 0x1),
	}
}

// Op returns the operation field.
func (code Code) Op() CodeOp {
	return CodeOp((code.Opcode >> 4) & 0xf)
}

// Register returns the primary register field.
func (code Code) Register() machine.Register {
	return machine.Register((code.Opcode >> 2) & 0x3)
}

// Mode returns the addressing mode field.
func (code Code) Mode() CodeMode {
	return CodeMode(code.Opcode & 0x3)
}

// Cond returns the condition of a conditional jump. It occupies the same
// bits as the addressing mode.
func (code Code) Cond() CodeCond {
	return CodeCond(code.Opcode & 0x3)
}

// UnaryOp returns the unary operation, which overlaps the low bit of the
// primary register field.
func (code Code) UnaryOp() CodeUnaryOp {
	return CodeUnaryOp(code.Opcode & 0x7)
}

// StackOp returns the stack operation.
func (code Code) StackOp() CodeStackOp {
	return CodeStackOp(code.Opcode & 0x1)
}

// Alt returns the secondary register named by the operand.
func (code Code) Alt() machine.Register {
	return machine.Register(code.Operand & 0x3)
}

// source returns the assembly text of the value operand.
func (code Code) source() (out string) {
	switch code.Mode() {
	case AM_REGISTER:
		out = code.Alt().String()
	case AM_CONSTANT:
		out = fmt.Sprintf("#%02x", code.Operand)
	case AM_ADDRESS:
		out = fmt.Sprintf("@%02x", code.Operand)
	case AM_INDEX:
		out = "@" + code.Alt().String()
	}

	return
}

// String returns the assembly language representation of this instruction.
func (code Code) String() (out string) {
	op := code.Op()

	switch op {
	case OP_HALT, OP_RETURN:
		out = op.String()
	case OP_INTERRUPT, OP_JUMP:
		out = fmt.Sprintf("%v #%02x", op, code.Operand)
	case OP_CALL:
		out = fmt.Sprintf("%v %v", op, code.source())
	case OP_CONDJUMP:
		out = fmt.Sprintf("%v #%02x", code.Cond(), code.Operand)
	case OP_UNARY:
		out = fmt.Sprintf("%v %v", code.UnaryOp(), code.Alt())
	case OP_STACK:
		out = fmt.Sprintf("%v %v", code.StackOp(), code.Register())
	default:
		out = fmt.Sprintf("%v %v %v", op, code.Register(), code.source())
	}

	return
}
