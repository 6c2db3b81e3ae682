// Package word implements the fixed-width wraparound arithmetic shared by
// every state-mutating write of the virtual CPU.
package word

const (
	BITS = 8 // Machine word width.
)

// Bit is a single flag value, either CLEAR or SET.
type Bit uint8

const (
	CLEAR = Bit(0)
	SET   = Bit(1)
)

// BitOf converts a boolean to a Bit.
func BitOf(value bool) Bit {
	if value {
		return SET
	}
	return CLEAR
}

// Bool reports whether the bit is set.
func (b Bit) Bool() bool {
	return b != CLEAR
}

// Limit clamps raw to an unsigned word of the given width (1 to 63 bits)
// using two's-complement wraparound. carry is SET when the clamped value
// differs from raw, that is when raw over- or under-flowed the width.
func Limit(bits uint, raw int) (value uint64, carry Bit) {
	mask := (uint64(1) << bits) - 1
	value = uint64(raw) & mask
	carry = BitOf(int64(raw) != int64(value))
	return
}

// Limit8 clamps raw to a machine word.
func Limit8(raw int) (value uint8, carry Bit) {
	v, carry := Limit(BITS, raw)
	value = uint8(v)
	return
}
