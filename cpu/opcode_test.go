package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/rasmvm/machine"
)

func TestCode_Decode(t *testing.T) {
	assert := assert.New(t)

	code := Code{Opcode: 0x9b, Operand: 0x7e}
	assert.Equal(OP_ADD, code.Op())
	assert.Equal(machine.R2, code.Register())
	assert.Equal(AM_INDEX, code.Mode())
	assert.Equal(machine.R2, code.Alt())

	code = Code{Opcode: 0x63, Operand: 0x40}
	assert.Equal(OP_CONDJUMP, code.Op())
	assert.Equal(COND_NC, code.Cond())

	code = Code{Opcode: 0xe4, Operand: 0x01}
	assert.Equal(OP_UNARY, code.Op())
	assert.Equal(UNARY_ASR, code.UnaryOp())
	assert.Equal(machine.R1, code.Alt())

	code = Code{Opcode: 0xfd}
	assert.Equal(OP_STACK, code.Op())
	assert.Equal(STACK_POP, code.StackOp())
	assert.Equal(machine.R3, code.Register())
}

func TestCode_Make(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		code   Code
		expect Code
	}){
		{MakeCodeHalt(), Code{0x00, 0x00}},
		{MakeCodeInterrupt(0x20), Code{0x11, 0x20}},
		{MakeCodeJump(0x2a), Code{0x31, 0x2a}},
		{MakeCodeReturn(), Code{0x50, 0x00}},
		{MakeCodeCond(COND_C, 0x10), Code{0x62, 0x10}},
		{MakeCodeUnary(UNARY_NOT, machine.R3), Code{0xe2, 0x03}},
		{MakeCodeStack(STACK_PUSH, machine.R2), Code{0xf8, 0x00}},
		{MakeCodeStack(STACK_POP, machine.R2), Code{0xf9, 0x00}},
		{MakeCode(OP_STORE, machine.R1, AM_ADDRESS, 0xa2), Code{0x86, 0xa2}},
		{MakeCode(OP_XOR, machine.R3, AM_REGISTER, 0x01), Code{0xdc, 0x01}},
	}

	for _, entry := range table {
		assert.Equal(entry.expect, entry.code, entry.expect.String())
	}
}

func TestCode_String(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		code Code
		text string
	}){
		{Code{0x00, 0x00}, "hlt"},
		{Code{0x11, 0x20}, "int #20"},
		{Code{0x21, 0x2a}, "cmp r0 #2a"},
		{Code{0x31, 0x2a}, "jmp #2a"},
		{Code{0x43, 0x01}, "call @r1"},
		{Code{0x50, 0x00}, "ret"},
		{Code{0x61, 0x08}, "jnz #08"},
		{Code{0x72, 0xa2}, "ld r0 @a2"},
		{Code{0x86, 0xa2}, "st r1 @a2"},
		{Code{0x94, 0x03}, "add r1 r3"},
		{Code{0xa1, 0x09}, "sub r0 #09"},
		{Code{0xe3, 0x02}, "asl r2"},
		{Code{0xe7, 0x02}, "CodeUnaryOp(7) r2"},
		{Code{0xfd, 0x00}, "pop r3"},
	}

	for _, entry := range table {
		assert.Equal(entry.text, entry.code.String())
	}
}

func TestCodeOp_String(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("hlt", OP_HALT.String())
	assert.Equal("stack", OP_STACK.String())
	assert.Equal("CodeOp(16)", CodeOp(16).String())
	assert.Equal("index", AM_INDEX.String())
	assert.Equal("jnc", COND_NC.String())
}
