// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package interrupt

import (
	"iter"
	"log"
	"strconv"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/ezrec/rasmvm/machine"
)

// Thread local key of the machine an interrupt script runs against.
const _script_machine = "machine"

type builtinFunc = func(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error)

// Script builtins. Each reads or writes the machine bound to the thread.
var _script_builtins = map[string]builtinFunc{
	"register":     scriptRegister,
	"set_register": scriptSetRegister,
	"memory":       scriptMemory,
	"set_memory":   scriptSetMemory,
	"ip":           scriptIp,
	"sp":           scriptSp,
	"zero":         scriptZero,
	"carry":        scriptCarry,
}

// script is an interrupt handler written in Starlark.
type script struct {
	name  string
	entry starlark.Callable
}

// Script compiles a Starlark interrupt handler. The source must define a
// function interrupt() taking no arguments, which is called for every
// dispatch; the interrupt completes when it returns.
//
// Integer valued defines are predeclared as globals, along with the
// builtins register(r), set_register(r, v), memory(a), set_memory(a, v),
// ip(), sp(), zero() and carry().
func Script(name string, source string, defines iter.Seq2[string, string]) (h Handler, err error) {
	predeclared := starlark.StringDict{}
	if defines != nil {
		for key, str := range defines {
			value, perr := strconv.ParseInt(str, 0, 64)
			if perr != nil {
				// Only integer defines are visible to scripts.
				continue
			}
			predeclared[key] = starlark.MakeInt64(value)
		}
	}
	for key, fn := range _script_builtins {
		predeclared[key] = starlark.NewBuiltin(key, fn)
	}

	thread := &starlark.Thread{Name: name}
	opts := syntax.FileOptions{}
	globals, err := starlark.ExecFileOptions(&opts, thread, name, source, predeclared)
	if err != nil {
		return
	}

	entry, ok := globals["interrupt"].(starlark.Callable)
	if !ok {
		err = ErrScriptEntry(name)
		return
	}

	globals.Freeze()

	h = &script{name: name, entry: entry}
	return
}

// Interrupt runs the script's interrupt() against m. Script errors are
// logged; the interrupt completes either way.
func (sc *script) Interrupt(m *machine.Machine, done Done) {
	defer done()

	thread := &starlark.Thread{Name: sc.name}
	thread.SetLocal(_script_machine, m)

	_, err := starlark.Call(thread, sc.entry, nil, nil)
	if err != nil {
		log.Printf("interrupt: %v: %v", sc.name, err)
	}
}

func scriptMachine(thread *starlark.Thread) (m *machine.Machine, err error) {
	m, ok := thread.Local(_script_machine).(*machine.Machine)
	if !ok {
		err = ErrScriptUnbound
	}
	return
}

func scriptRegisterArg(value int) (reg machine.Register, err error) {
	reg = machine.Register(value)
	if !reg.Valid() {
		err = machine.ErrRegisterInvalid
	}
	return
}

func scriptAddressArg(value int) (address uint8, err error) {
	if value < 0 || value >= machine.MEMORY_SIZE {
		err = ErrAddressInvalid
		return
	}
	address = uint8(value)
	return
}

func scriptRegister(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var index int
	err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 1, &index)
	if err != nil {
		return nil, err
	}
	m, err := scriptMachine(thread)
	if err != nil {
		return nil, err
	}
	reg, err := scriptRegisterArg(index)
	if err != nil {
		return nil, err
	}
	return starlark.MakeInt(int(m.Register(reg))), nil
}

func scriptSetRegister(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var index, value int
	err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 2, &index, &value)
	if err != nil {
		return nil, err
	}
	m, err := scriptMachine(thread)
	if err != nil {
		return nil, err
	}
	reg, err := scriptRegisterArg(index)
	if err != nil {
		return nil, err
	}
	err = m.WriteRegister(reg, value)
	if err != nil {
		return nil, err
	}
	return starlark.None, nil
}

func scriptMemory(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var index int
	err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 1, &index)
	if err != nil {
		return nil, err
	}
	m, err := scriptMachine(thread)
	if err != nil {
		return nil, err
	}
	address, err := scriptAddressArg(index)
	if err != nil {
		return nil, err
	}
	return starlark.MakeInt(int(m.Memory(address))), nil
}

func scriptSetMemory(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var index, value int
	err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 2, &index, &value)
	if err != nil {
		return nil, err
	}
	m, err := scriptMachine(thread)
	if err != nil {
		return nil, err
	}
	address, err := scriptAddressArg(index)
	if err != nil {
		return nil, err
	}
	m.WriteMemory(address, value)
	return starlark.None, nil
}

// scriptGetter builds a no-argument builtin reading a value from the machine.
func scriptGetter(get func(m *machine.Machine) int) builtinFunc {
	return func(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 0)
		if err != nil {
			return nil, err
		}
		m, err := scriptMachine(thread)
		if err != nil {
			return nil, err
		}
		return starlark.MakeInt(get(m)), nil
	}
}

var (
	scriptIp    = scriptGetter(func(m *machine.Machine) int { return int(m.Ip()) })
	scriptSp    = scriptGetter(func(m *machine.Machine) int { return int(m.Sp()) })
	scriptZero  = scriptGetter(func(m *machine.Machine) int { return int(m.ZeroFlag()) })
	scriptCarry = scriptGetter(func(m *machine.Machine) int { return int(m.CarryFlag()) })
)
