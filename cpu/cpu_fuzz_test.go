package cpu

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/rasmvm/machine"
	"github.com/ezrec/rasmvm/word"
)

func FuzzCpu_AddSub(f *testing.F) {
	f.Add(uint8(0x00), uint8(0x00))
	f.Add(uint8(0xff), uint8(0x01))
	f.Add(uint8(0x01), uint8(0x02))
	f.Add(uint8(0x80), uint8(0x80))

	f.Fuzz(func(t *testing.T, a uint8, b uint8) {
		assert := assert.New(t)

		// add r1 #b
		// sub r2 r3
		cpu := newTestCpu(
			MakeCode(OP_ADD, machine.R1, AM_CONSTANT, b),
			MakeCode(OP_SUBTRACT, machine.R2, AM_REGISTER, uint8(machine.R3)),
		)
		m := cpu.Machine
		m.WriteRegister(machine.R1, int(a))
		m.WriteRegister(machine.R2, int(a))
		m.WriteRegister(machine.R3, int(b))

		assert.NoError(cpu.Step())
		assert.Equal(a+b, m.Register(machine.R1))
		assert.Equal(word.BitOf(int(a)+int(b) > 0xff), m.CarryFlag())

		assert.NoError(cpu.Step())
		assert.Equal(a-b, m.Register(machine.R2))
		assert.Equal(word.BitOf(a < b), m.CarryFlag())
	})
}

func FuzzCpu(f *testing.F) {
	for op := range 16 {
		f.Add(uint8(op<<4), uint8(0x00), uint8(0x00))
		f.Add(uint8(op<<4|0xf), uint8(0xff), uint8(0xfe))
	}

	f.Fuzz(func(t *testing.T, opcode uint8, operand uint8, ip uint8) {
		assert := assert.New(t)

		cpu := newTestCpu()
		m := cpu.Machine
		for n := range machine.REGISTER_COUNT {
			m.WriteRegister(machine.Register(n), int(operand)+n)
		}
		m.WriteMemory(ip, int(opcode))
		m.WriteMemory(ip+1, int(operand))
		m.WriteIp(int(ip))

		var steps int
		m.Events.OnStep(func(ev machine.StepCompleted) { steps++ })

		code := cpu.FetchCode()
		err := cpu.Step()
		if err != nil {
			assert.True(errors.Is(err, ErrOpcodeStore) || errors.Is(err, ErrOpcodeUnary), err.Error())
			assert.ErrorIs(err, ErrOpcode(code))
		}

		assert.Equal(1, steps)

		switch code.Op() {
		case OP_HALT:
			assert.True(m.Halted())
		case OP_JUMP, OP_CALL, OP_RETURN, OP_CONDJUMP:
		default:
			assert.Equal(ip+2, m.Ip())
		}
	})
}
