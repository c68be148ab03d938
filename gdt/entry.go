package gdt

import (
	"encoding/binary"

	"github.com/npillmayer/ostools/asm"
)

// Entry is one segment descriptor. Encode renders its fields into a label
// body of six data directives.
type Entry struct {
	name      string
	limit     uint16
	base0_15  uint16
	base16_23 uint8
	base24_31 uint8
	access    uint8
	flags     uint8
	label     *asm.Label
}

// NewEntry creates a descriptor with limit 0xffff, base 0, a clear access
// byte and flags 0xcf. An empty name lets a Table choose one.
func NewEntry(name string) *Entry {
	return &Entry{
		name:  name,
		limit: 0xffff,
		flags: 0xcf,
	}
}

// Name returns the entry's label name.
func (e *Entry) Name() string {
	return e.name
}

// SetLimit sets bits 0–15 of the segment limit.
func (e *Entry) SetLimit(limit uint16) *Entry {
	e.limit = limit
	return e
}

// SetBase sets the 32-bit linear address where the segment begins.
func (e *Entry) SetBase(base uint32) *Entry {
	e.base0_15 = uint16(base & 0xffff)
	e.base16_23 = uint8(base >> 16 & 0xff)
	e.base24_31 = uint8(base >> 24 & 0xff)
	return e
}

// Base re-assembles the base address from its three fields.
func (e *Entry) Base() uint32 {
	return uint32(e.base24_31)<<24 | uint32(e.base16_23)<<16 | uint32(e.base0_15)
}

// Limit returns bits 0–15 of the segment limit.
func (e *Entry) Limit() uint16 {
	return e.limit
}

// SetAccess sets the access byte.
func (e *Entry) SetAccess(access uint8) *Entry {
	e.access = access
	return e
}

// SetAccessByte applies the value of an access byte builder.
func (e *Entry) SetAccessByte(a *AccessByte) error {
	v, err := a.Value()
	if err != nil {
		return err
	}
	e.access = v
	return nil
}

// Access returns the access byte.
func (e *Entry) Access() uint8 {
	return e.access
}

// SetFlagsByte sets the byte holding flags and limit bits 16–19.
func (e *Entry) SetFlagsByte(flags uint8) *Entry {
	e.flags = flags
	return e
}

// SetFlags applies the value of a flags builder.
func (e *Entry) SetFlags(f *Flags) error {
	v, err := f.Value()
	if err != nil {
		return err
	}
	e.flags = v
	return nil
}

// Flags returns the byte holding flags and limit bits 16–19.
func (e *Entry) Flags() uint8 {
	return e.flags
}

// Bytes returns the 8-byte descriptor as the CPU reads it.
func (e *Entry) Bytes() [8]byte {
	var b [8]byte
	binary.LittleEndian.PutUint16(b[0:2], e.limit)
	binary.LittleEndian.PutUint16(b[2:4], e.base0_15)
	b[4] = e.base16_23
	b[5] = e.access
	b[6] = e.flags
	b[7] = e.base24_31
	return b
}

// Encode creates a new label holding the descriptor fields, in descriptor
// order:
//
//	dw limit        (hex)
//	dw base 0–15    (decimal)
//	db base 16–23   (decimal)
//	db access       (hex)
//	db flags        (binary)
//	db base 24–31   (decimal)
//
// Labels returned by earlier calls are left untouched.
func (e *Entry) Encode() (*asm.Label, error) {
	l, err := asm.NewLabel(e.name)
	if err != nil {
		return nil, err
	}
	l.Add(
		asm.MustDW(asm.Int(e.limit, asm.FormatHex)),
		asm.MustDW(asm.Int(e.base0_15, asm.FormatDecimal)),
		asm.MustDB(asm.Int(e.base16_23, asm.FormatDecimal)),
		asm.MustDB(asm.Int(e.access, asm.FormatHex)),
		asm.MustDB(asm.Int(e.flags, asm.FormatBinary)),
		asm.MustDB(asm.Int(e.base24_31, asm.FormatDecimal)),
	)
	if err := l.Err(); err != nil {
		return nil, err
	}
	e.label = l
	tracer().Debugf("encoded descriptor %s = % x", e.name, e.Bytes())
	return l, nil
}

// Label returns the label created by the last Encode, or nil.
func (e *Entry) Label() *asm.Label {
	return e.label
}
