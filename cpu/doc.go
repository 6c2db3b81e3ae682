// Package cpu implements the execution engine of the rasmvm virtual CPU.
//
// Every instruction is two bytes: an opcode byte holding the operation
// (bits 7-4), the primary register (bits 3-2) and the addressing mode
// (bits 1-0), followed by an operand byte whose low two bits also name a
// secondary register. The engine fetches, decodes and executes one
// instruction per Step, mutating the machine only through its Write*
// operations so that every change is observable.
//
// The INTERRUPT opcode hands control to the interrupt table. A handler may
// complete later, on another goroutine; until it does, Step refuses to run.
package cpu
