package machine

import (
	"maps"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/rasmvm/word"
)

// recorder collects the names of every event delivered by a machine.
type recorder struct {
	names []string
}

func (rec *recorder) attach(m *Machine) {
	m.Events.OnAny(func(ev Event) {
		rec.names = append(rec.names, ev.Names()...)
	})
}

func (rec *recorder) take() (names []string) {
	names = rec.names
	rec.names = nil
	return
}

func TestMachine_Defaults(t *testing.T) {
	assert := assert.New(t)

	m := NewMachine()

	snap := m.Snapshot()
	assert.Equal([MEMORY_SIZE]uint8{}, snap.Memory)
	assert.Equal([REGISTER_COUNT]uint8{}, snap.Register)
	assert.Equal(uint8(0), m.Ip())
	assert.Equal(uint8(0xbf), m.Sp())
	assert.Equal(word.CLEAR, m.ZeroFlag())
	assert.Equal(word.CLEAR, m.CarryFlag())
	assert.False(m.Halted())
	assert.False(m.Interrupted())
}

func TestMachine_Reset(t *testing.T) {
	assert := assert.New(t)

	m := NewMachine()
	pristine := m.Snapshot()

	m.WriteMemory(0x10, 0x2a)
	m.WriteRegister(R2, 0x1ff)
	m.WriteIp(0x20)
	m.WriteSp(0x80)
	m.WriteZeroFlag(word.SET)
	m.WriteHalted(true)
	m.WriteInterrupted(true)
	assert.NotEqual(pristine, m.Snapshot())

	m.Reset()
	once := m.Snapshot()
	assert.Equal(pristine, once)

	m.Reset()
	assert.Equal(once, m.Snapshot())
}

func TestMachine_ResetKeepsObservers(t *testing.T) {
	assert := assert.New(t)

	m := NewMachine()
	rec := &recorder{}
	rec.attach(m)

	m.Reset()
	assert.Equal([]string{EVENT_RESET}, rec.take())

	m.WriteIp(4)
	assert.Equal([]string{EVENT_IP}, rec.take())
}

func TestMachine_WriteMemory(t *testing.T) {
	assert := assert.New(t)

	m := NewMachine()

	var seen []MemoryChanged
	var at []MemoryChanged
	m.Events.OnMemory(func(ev MemoryChanged) { seen = append(seen, ev) })
	m.Events.OnMemoryAt(0xa2, func(ev MemoryChanged) { at = append(at, ev) })

	m.WriteMemory(0xa2, 0x12a)
	m.WriteMemory(0xa3, -1)

	assert.Equal(uint8(0x2a), m.Memory(0xa2))
	assert.Equal(uint8(0xff), m.Memory(0xa3))
	assert.Equal(word.CLEAR, m.CarryFlag(), "memory writes discard carry")

	assert.Equal([]MemoryChanged{
		{Address: 0xa2, Value: 0x2a, Raw: 0x12a},
		{Address: 0xa3, Value: 0xff, Raw: -1},
	}, seen)
	assert.Equal([]MemoryChanged{{Address: 0xa2, Value: 0x2a, Raw: 0x12a}}, at)
}

func TestMachine_WriteRegister(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		raw   int
		value uint8
		carry word.Bit
	}){
		{0x2a, 0x2a, word.CLEAR},
		{0x100, 0x00, word.SET},
		{0xff + 0x2b, 0x2a, word.SET},
		{0x01 - 0x02, 0xff, word.SET},
		{0xff - 0xd5, 0x2a, word.CLEAR},
	}

	m := NewMachine()
	for _, entry := range table {
		err := m.WriteRegister(R1, entry.raw)
		assert.NoError(err)
		assert.Equal(entry.value, m.Register(R1), "%#x", entry.raw)
		assert.Equal(entry.carry, m.CarryFlag(), "%#x", entry.raw)
	}
}

func TestMachine_WriteRegister_Invalid(t *testing.T) {
	assert := assert.New(t)

	m := NewMachine()
	rec := &recorder{}
	rec.attach(m)
	before := m.Snapshot()

	err := m.WriteRegister(Register(4), 1)
	assert.ErrorIs(err, ErrRegisterInvalid)
	err = m.WriteRegister(Register(-1), 1)
	assert.ErrorIs(err, ErrRegisterInvalid)

	assert.Equal(before, m.Snapshot())
	assert.Empty(rec.take())
}

func TestMachine_Pointers(t *testing.T) {
	assert := assert.New(t)

	m := NewMachine()

	var ips []IpChanged
	var sps []SpChanged
	m.Events.OnIp(func(ev IpChanged) { ips = append(ips, ev) })
	m.Events.OnSp(func(ev SpChanged) { sps = append(sps, ev) })

	m.WriteIp(0x102)
	m.WriteSp(-1)

	assert.Equal(uint8(0x02), m.Ip())
	assert.Equal(uint8(0xff), m.Sp())
	assert.Equal([]IpChanged{{Value: 0x02, Raw: 0x102}}, ips)
	assert.Equal([]SpChanged{{Value: 0xff, Raw: -1}}, sps)
}

func TestMachine_Flags(t *testing.T) {
	assert := assert.New(t)

	m := NewMachine()

	var zeros []ZeroFlagChanged
	var carries []CarryFlagChanged
	m.Events.OnZeroFlag(func(ev ZeroFlagChanged) { zeros = append(zeros, ev) })
	m.Events.OnCarryFlag(func(ev CarryFlagChanged) { carries = append(carries, ev) })

	m.WriteZeroFlag(word.SET)
	m.WriteCarryFlag(word.Bit(7))
	m.WriteZeroFlag(word.CLEAR)

	assert.Equal(word.CLEAR, m.ZeroFlag())
	assert.Equal(word.SET, m.CarryFlag())
	assert.Equal([]ZeroFlagChanged{{Value: word.SET}, {Value: word.CLEAR}}, zeros)
	assert.Equal([]CarryFlagChanged{{Value: word.SET}}, carries)
}

func TestMachine_NotificationCompleteness(t *testing.T) {
	assert := assert.New(t)

	m := NewMachine()
	rec := &recorder{}
	rec.attach(m)

	table := [](struct {
		name   string
		write  func()
		events []string
	}){
		{"memory", func() { m.WriteMemory(42, 1) },
			[]string{"memory-changed", "memory-changed:42"}},
		{"register", func() { m.WriteRegister(R3, 1) },
			[]string{"carry-flag-changed", "register-changed", "register-changed:3"}},
		{"ip", func() { m.WriteIp(2) }, []string{"ip-changed"}},
		{"sp", func() { m.WriteSp(2) }, []string{"sp-changed"}},
		{"zero", func() { m.WriteZeroFlag(word.SET) }, []string{"zero-flag-changed"}},
		{"carry", func() { m.WriteCarryFlag(word.SET) }, []string{"carry-flag-changed"}},
		{"halted", func() { m.WriteHalted(true) }, []string{"halted-changed"}},
		{"interrupted", func() { m.WriteInterrupted(true) }, []string{"interrupted-changed"}},
		{"step", func() { m.CompleteStep() }, []string{"step-completed"}},
		{"reset", func() { m.Reset() }, []string{"reset"}},
	}

	for _, entry := range table {
		entry.write()
		assert.Equal(entry.events, rec.take(), entry.name)
	}
}

func TestMachine_ObserverSeesStoredState(t *testing.T) {
	assert := assert.New(t)

	m := NewMachine()

	var observed []uint8
	err := m.Events.OnRegisterAt(R2, func(ev RegisterChanged) {
		observed = append(observed, m.Register(R2), uint8(m.CarryFlag()))
	})
	assert.NoError(err)

	m.WriteRegister(R2, 0x101)
	m.WriteRegister(R1, 0x05)

	assert.Equal([]uint8{0x01, 1}, observed)

	err = m.Events.OnRegisterAt(Register(9), func(ev RegisterChanged) {})
	assert.ErrorIs(err, ErrRegisterInvalid)
}

func TestMachine_Defines(t *testing.T) {
	assert := assert.New(t)

	m := NewMachine()
	defines := maps.Collect(m.Defines())

	assert.Equal("256", defines["MEMORY_SIZE"])
	assert.Equal("0xbf", defines["SP_INITIAL"])
	assert.Equal("4", defines["REGISTER_COUNT"])
}

func TestRegister_String(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("r0", R0.String())
	assert.Equal("r3", R3.String())
	assert.Equal("Register(4)", Register(4).String())
	assert.True(R3.Valid())
	assert.False(Register(4).Valid())
}
