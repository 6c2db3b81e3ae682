// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"context"
	"fmt"
	"iter"
	"log"
	"maps"
	"math/rand/v2"

	"github.com/ezrec/rasmvm/cpu"
	"github.com/ezrec/rasmvm/internal"
	"github.com/ezrec/rasmvm/interrupt"
	"github.com/ezrec/rasmvm/io"
	"github.com/ezrec/rasmvm/machine"
)

const (
	PROGRAM_SIZE_MAX = machine.MEMORY_SIZE // Largest program image, in bytes.
)

var _emulator_defines = map[string]string{
	"PROGRAM_SIZE_MAX": fmt.Sprintf("%v", PROGRAM_SIZE_MAX),
}

// Emulator state. CPU + machine + system interrupts.
type Emulator struct {
	Verbose  bool         // If set, enables verbose logging.
	*cpu.Cpu              // Reference to the CPU simulation.
	Program  *cpu.Program // Program loaded at reset.

	Tape io.Tape // Tape used by the tape interrupts.

	loading bool // Suppresses tracing while the program is loaded.
}

// NewEmulator creates a new emulator, with the system interrupts installed.
func NewEmulator() (emu *Emulator) {
	emu = &Emulator{
		Cpu:     cpu.NewCpu(machine.NewMachine(), interrupt.NewTable()),
		Program: &cpu.Program{},
	}

	interrupt.InstallSystem(emu.Interrupts, interrupt.System{Tape: &emu.Tape})

	emu.Machine.Events.OnAny(emu.trace)

	return
}

// Defines returns an iterator over all of the defines
func (emu *Emulator) Defines() iter.Seq2[string, string] {
	return internal.IterSeq2Concat(maps.All(_emulator_defines),
		emu.Machine.Defines(),
		emu.Interrupts.Defines(),
	)
}

// Seed replaces the random interrupt source with a deterministic one.
func (emu *Emulator) Seed(seed1, seed2 uint64) {
	rng := rand.New(rand.NewPCG(seed1, seed2))
	emu.Interrupts.Register(interrupt.INT_RANDOM, interrupt.Random(rng))
}

// Script compiles a Starlark interrupt handler and installs it at id.
// The emulator defines are visible to the script.
func (emu *Emulator) Script(id uint8, name string, source string) (err error) {
	h, err := interrupt.Script(name, source, emu.Defines())
	if err != nil {
		return
	}

	emu.Interrupts.Register(id, h)

	return
}

// Reset the machine, rewind the tape and load the program at address 0.
// No interrupt may be in flight.
func (emu *Emulator) Reset() (err error) {
	bin := emu.Program.Binary()
	if len(bin) > PROGRAM_SIZE_MAX {
		err = ErrProgramSize
		return
	}

	emu.Cpu.Verbose = emu.Verbose
	emu.Cpu.Reset()
	emu.Tape.Rewind()

	emu.loading = true
	defer func() { emu.loading = false }()

	m := emu.Machine
	for n, data := range bin {
		m.WriteMemory(uint8(n), int(data))
	}

	if emu.Verbose {
		for ip, code := range emu.Program.Codes() {
			log.Printf("emulator: %02x: %v", ip, code)
		}
	}

	return
}

// await waits for the last dispatched interrupt to complete.
func (emu *Emulator) await(ctx context.Context) (err error) {
	pending := emu.Cpu.Pending()
	if pending == nil {
		return
	}

	select {
	case <-pending:
	case <-ctx.Done():
		err = ctx.Err()
	}

	return
}

// Tick performs a single instruction step, waiting for any interrupt it
// dispatches to complete. done is set once the machine has halted.
func (emu *Emulator) Tick(ctx context.Context) (done bool, err error) {
	ip := emu.Machine.Ip()
	defer func() {
		if err != nil {
			err = &ErrRuntime{Ip: ip, Err: err}
		}
	}()

	// An earlier tick may have been cancelled mid interrupt.
	err = emu.await(ctx)
	if err != nil {
		return
	}

	// Set CPU verbosity
	emu.Cpu.Verbose = emu.Verbose
	emu.Interrupts.Verbose = emu.Verbose

	err = emu.Cpu.Step()
	if err != nil {
		return
	}

	err = emu.await(ctx)
	if err != nil {
		return
	}

	done = emu.Machine.Halted()

	return
}

// Run ticks the emulator until the machine halts, an instruction fails, or
// ctx is done.
func (emu *Emulator) Run(ctx context.Context) (err error) {
	for {
		err = ctx.Err()
		if err != nil {
			return
		}

		var done bool
		done, err = emu.Tick(ctx)
		if err != nil || done {
			return
		}
	}
}

// trace logs every change to the machine when verbose.
func (emu *Emulator) trace(ev machine.Event) {
	if !emu.Verbose || emu.loading {
		return
	}

	switch ev := ev.(type) {
	case machine.MemoryChanged:
		log.Printf("emulator: [%02x] = %02x", ev.Address, ev.Value)
	case machine.RegisterChanged:
		log.Printf("emulator: %v = %02x", ev.Register, ev.Value)
	case machine.IpChanged:
		log.Printf("emulator: ip = %02x", ev.Value)
	case machine.SpChanged:
		log.Printf("emulator: sp = %02x", ev.Value)
	case machine.ZeroFlagChanged:
		log.Printf("emulator: z = %v", ev.Value)
	case machine.CarryFlagChanged:
		log.Printf("emulator: c = %v", ev.Value)
	case machine.StepCompleted:
		log.Printf("emulator: step %d", emu.Cpu.Ticks)
	default:
		log.Printf("emulator: %v %+v", ev.Names()[0], ev)
	}
}
