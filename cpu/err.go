package cpu

import (
	"errors"

	"github.com/ezrec/rasmvm/translate"
)

var f = translate.From

var (
	// Cpu errors
	ErrInterruptPending = errors.New(f("interrupt pending"))

	// Instruction decode errors
	ErrOpcodeDecode = errors.New(f("decode"))
	ErrOpcodeStore  = errors.New(f("store needs an address"))
	ErrOpcodeUnary  = errors.New(f("unary op invalid"))
)

type ErrOpcode Code

func (eo ErrOpcode) Error() string {
	return f("bad opcode 0x%02x%02x %v", eo.Opcode, eo.Operand, Code(eo).String())
}

func (eo ErrOpcode) Is(err error) (ok bool) {
	_, ok = err.(ErrOpcode)
	return
}
