package gdt

import (
	"fmt"

	"github.com/npillmayer/ostools/errs"
	"github.com/npillmayer/ostools/internal/bitfield"
)

// Privilege is a CPU privilege level, stored in bits 6–5 of the access byte.
// 0 is the highest privilege (kernel), 3 the lowest (user applications).
type Privilege uint8

const (
	Ring0 Privilege = iota
	Ring1
	Ring2
	Ring3
)

const dplMask = 0x60

func (p Privilege) String() string {
	return fmt.Sprintf("ring%d", uint8(p))
}

// AccessByte is a builder for the access byte of a descriptor.
// Setters return the builder for chaining; a setter failure is kept and
// reported by Value.
type AccessByte struct {
	value uint64
	err   error
}

// NewAccessByte returns a builder with all bits clear.
func NewAccessByte() *AccessByte {
	return &AccessByte{}
}

// AccessByteOf returns a builder starting from value v.
func AccessByteOf(v uint8) *AccessByte {
	return &AccessByte{value: uint64(v)}
}

func (a *AccessByte) set(pos uint, state bool) *AccessByte {
	v, err := bitfield.SetBit(a.value, pos, state)
	if err != nil {
		if a.err == nil {
			a.err = err
		}
		return a
	}
	a.value = v
	return a
}

// SetPresent sets the present bit (7). It must be set for any valid segment.
func (a *AccessByte) SetPresent(state bool) *AccessByte {
	return a.set(7, state)
}

// SetPrivilege sets the descriptor privilege level (bits 6–5).
func (a *AccessByte) SetPrivilege(p Privilege) *AccessByte {
	if p > Ring3 {
		if a.err == nil {
			a.err = errs.At(errs.KindRange, "gdt.AccessByte.SetPrivilege", 5,
				"privilege level %d out of range", uint8(p))
		}
		return a
	}
	a.value = bitfield.SetFlag(bitfield.UnsetFlag(a.value, dplMask), uint64(p)<<5)
	return a
}

// SetDescriptorType sets the descriptor type bit (4). Clear defines a system
// segment (e.g. a task state segment), set defines a code or data segment.
func (a *AccessByte) SetDescriptorType(state bool) *AccessByte {
	return a.set(4, state)
}

// SetExecutable sets the executable bit (3). Clear defines a data segment,
// set defines a code segment.
func (a *AccessByte) SetExecutable(state bool) *AccessByte {
	return a.set(3, state)
}

// SetDirectionConforming sets bit 2.
//
// For data segments this is the direction bit: set makes the segment grow
// down. For code segments it is the conforming bit: set allows execution
// from an equal or lower privilege level than DPL.
func (a *AccessByte) SetDirectionConforming(state bool) *AccessByte {
	return a.set(2, state)
}

// SetReadWrite sets bit 1: readable for code segments, writable for data
// segments.
func (a *AccessByte) SetReadWrite(state bool) *AccessByte {
	return a.set(1, state)
}

// SetAccessed sets the accessed bit (0). Best left clear, the CPU sets it.
func (a *AccessByte) SetAccessed(state bool) *AccessByte {
	return a.set(0, state)
}

// Privilege returns the DPL currently encoded.
func (a *AccessByte) Privilege() Privilege {
	return Privilege((a.value & dplMask) >> 5)
}

// Value returns the access byte, or the first error of a setter.
func (a *AccessByte) Value() (uint8, error) {
	if a.err != nil {
		return 0, a.err
	}
	return uint8(a.value), nil
}

// --- Flags -----------------------------------------------------------------

// Flags is a builder for the byte holding the flags nibble (bits 7–4) and
// the upper limit bits (3–0). The lower nibble is kept at 0xf.
type Flags struct {
	value uint64
	err   error
}

// NewFlags returns a builder with granularity and size set, i.e. a 32-bit
// segment with 4 KiB granularity (0xcf).
func NewFlags() *Flags {
	f := &Flags{value: 0x0f}
	return f.SetGranularity(true).SetSize(true)
}

// FlagsOf returns a builder starting from value v.
func FlagsOf(v uint8) *Flags {
	return &Flags{value: uint64(v)}
}

func (f *Flags) set(pos uint, state bool) *Flags {
	v, err := bitfield.SetBit(f.value, pos, state)
	if err != nil {
		if f.err == nil {
			f.err = err
		}
		return f
	}
	f.value = v
	return f
}

// SetGranularity sets the granularity flag. Clear scales the limit in bytes,
// set scales it in 4 KiB pages.
func (f *Flags) SetGranularity(state bool) *Flags {
	return f.set(7, state)
}

// SetSize sets the size flag. Clear defines a 16-bit protected mode segment,
// set a 32-bit one.
func (f *Flags) SetSize(state bool) *Flags {
	return f.set(6, state)
}

// SetLongMode sets the long-mode flag, defining a 64-bit code segment.
// Size should be clear when long mode is set.
func (f *Flags) SetLongMode(state bool) *Flags {
	return f.set(5, state)
}

// Value returns the flags byte, or the first error of a setter.
func (f *Flags) Value() (uint8, error) {
	if f.err != nil {
		return 0, f.err
	}
	return uint8(f.value), nil
}
