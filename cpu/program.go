package cpu

import (
	"iter"
)

// Program is a sequence of instructions loaded from address 0.
type Program struct {
	Opcodes []Code
}

// Binary returns the memory image of the program.
func (prog *Program) Binary() (bin []byte) {
	for _, code := range prog.Codes() {
		bin = append(bin, code.Opcode, code.Operand)
	}

	return
}

// Codes iterates over the program's instructions and their addresses.
func (prog *Program) Codes() iter.Seq2[int, Code] {
	return func(yield func(ip int, code Code) bool) {
		for n, code := range prog.Opcodes {
			if !yield(n*2, code) {
				return
			}
		}
	}
}

// Disassemble decodes a memory image two bytes at a time. A trailing odd
// byte is decoded with a zero operand.
func Disassemble(mem []byte) (prog *Program) {
	prog = &Program{}
	for n := 0; n < len(mem); n += 2 {
		code := Code{Opcode: mem[n]}
		if n+1 < len(mem) {
			code.Operand = mem[n+1]
		}
		prog.Opcodes = append(prog.Opcodes, code)
	}

	return
}
