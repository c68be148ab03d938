// Package bitfield contains bit manipulation helpers for descriptor fields.
package bitfield

import (
	"math/bits"

	"github.com/npillmayer/ostools/errs"
)

// SetFlag sets the bits of flag in value.
func SetFlag(value, flag uint64) uint64 {
	return value | flag
}

// UnsetFlag clears the bits of flag in value.
func UnsetFlag(value, flag uint64) uint64 {
	return value &^ flag
}

// Width returns the number of bits a position may address in value: the
// bit length of value rounded up to the next multiple of 8 above it.
// Zero has a width of 8, 0xff has a width of 16.
func Width(value uint64) uint {
	n := uint(bits.Len64(value))
	return ((n + 8) / 8) * 8
}

// SetBit sets (state = true) or clears (state = false) the bit at position
// pos of value. Order is | 7 | 6 | 5 | 4 | 3 | 2 | 1 | 0 |.
//
// Positions at or beyond Width(value) are rejected with a range error.
func SetBit(value uint64, pos uint, state bool) (uint64, error) {
	if w := Width(value); pos >= w {
		return value, errs.At(errs.KindRange, "bitfield.SetBit", int(pos),
			"bit position exceeds the value's width of %d bits", w)
	}
	mask := uint64(1) << pos
	if !state {
		return UnsetFlag(value, mask), nil
	}
	return SetFlag(value, mask), nil
}

// IsSet reports whether the bit at pos is set in value.
func IsSet(value uint64, pos uint) bool {
	return pos < 64 && value&(uint64(1)<<pos) != 0
}
