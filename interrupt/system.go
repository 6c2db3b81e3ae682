package interrupt

import (
	"fmt"
	"iter"
	"maps"
	"math/rand/v2"

	"github.com/ezrec/rasmvm/io"
	"github.com/ezrec/rasmvm/machine"
	"github.com/ezrec/rasmvm/word"
)

// System interrupt ids.
const (
	INT_RANDOM   = 0x20 // r0 = random byte
	INT_TAPE_OUT = 0x21 // tape output <- r0
	INT_TAPE_IN  = 0x22 // r0 <- tape input, carry set at end of input
)

var _system_defines = map[string]string{
	"INT_RANDOM":   fmt.Sprintf("0x%02x", INT_RANDOM),
	"INT_TAPE_OUT": fmt.Sprintf("0x%02x", INT_TAPE_OUT),
	"INT_TAPE_IN":  fmt.Sprintf("0x%02x", INT_TAPE_IN),
}

func systemDefines() iter.Seq2[string, string] {
	return maps.All(_system_defines)
}

// System configures the system interrupts.
type System struct {
	Random *rand.Rand // Random source. If nil, the global source is used.
	Tape   io.Channel // Tape device. If nil, the tape interrupts are not installed.
}

// InstallSystem registers the system interrupts in t.
func InstallSystem(t *Table, sys System) {
	t.Register(INT_RANDOM, Random(sys.Random))

	if sys.Tape != nil {
		t.Register(INT_TAPE_OUT, TapeOut(sys.Tape))
		t.Register(INT_TAPE_IN, TapeIn(sys.Tape))
	}
}

// Random writes a uniformly distributed byte to r0 and completes
// immediately.
func Random(rng *rand.Rand) Handler {
	return HandlerFunc(func(m *machine.Machine, done Done) {
		defer done()

		var value int
		if rng == nil {
			value = rand.IntN(256)
		} else {
			value = rng.IntN(256)
		}

		m.WriteRegister(machine.R0, value)
	})
}

// TapeOut sends r0 to the channel and completes immediately. The carry
// flag is set if the send failed.
func TapeOut(ch io.Channel) Handler {
	return HandlerFunc(func(m *machine.Machine, done Done) {
		defer done()

		err := ch.Send(m.Register(machine.R0))
		m.WriteCarryFlag(word.BitOf(err != nil))
	})
}

// TapeIn receives a byte from the channel into r0 on a separate goroutine,
// then completes. When no byte is available r0 is written with -1, which
// stores 0xff and sets the carry flag.
func TapeIn(ch io.Channel) Handler {
	return HandlerFunc(func(m *machine.Machine, done Done) {
		go func() {
			defer done()

			value, err := ch.Receive()
			if err != nil {
				m.WriteRegister(machine.R0, -1)
				return
			}

			m.WriteRegister(machine.R0, int(value))
		}()
	})
}
