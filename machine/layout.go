package machine

import (
	"fmt"
)

const (
	MEMORY_SIZE    = 256  // Bytes of memory shared by code, data and stack.
	REGISTER_COUNT = 4    // General purpose registers.
	SP_INITIAL     = 0xbf // Stack pointer after reset. The stack grows down.
	IP_INITIAL     = 0x00 // Instruction pointer after reset.
)

var _machine_defines = map[string]string{
	"MEMORY_SIZE":    fmt.Sprintf("%d", MEMORY_SIZE),
	"REGISTER_COUNT": fmt.Sprintf("%d", REGISTER_COUNT),
	"SP_INITIAL":     fmt.Sprintf("0x%02x", SP_INITIAL),
	"IP_INITIAL":     fmt.Sprintf("0x%02x", IP_INITIAL),
}

// Register is a general purpose register index.
type Register int

//go:generate go tool stringer -linecomment -type=Register
const (
	R0 = Register(0) // r0
	R1 = Register(1) // r1
	R2 = Register(2) // r2
	R3 = Register(3) // r3
)

// Valid returns true if the register exists in the register file.
func (reg Register) Valid() bool {
	return reg >= R0 && reg < REGISTER_COUNT
}
