/*
Package gdt builds a Global Descriptor Table as assembly source.

A segment descriptor is 8 bytes wide and scatters its fields across the
record for historical reasons:

	byte  0–1   limit 0–15
	byte  2–3   base 0–15
	byte  4     base 16–23
	byte  5     access byte  | P | DPL | S | E | DC | RW | A |
	byte  6     flags nibble | G | DB | L | reserved |, limit 16–19
	byte  7     base 24–31

Access bytes and flags are put together with chaining builders:

	access := gdt.NewAccessByte().
		SetPresent(true).
		SetPrivilege(gdt.Ring0).
		SetDescriptorType(true).
		SetExecutable(true).
		SetReadWrite(true)
	code := gdt.NewEntry("gdt_code")
	code.SetAccessByte(access)
	code.SetFlags(gdt.NewFlags())

A Table is an asm.Document which starts with the label `gdt_start` and the
mandatory null descriptor, takes any number of entries, and is closed by an
end label and the descriptor record (size and base) to be handed to `lgdt`.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package gdt

import "github.com/npillmayer/schuko/tracing"

// tracer writes to trace with key 'ostools.gdt'
func tracer() tracing.Trace {
	return tracing.Select("ostools.gdt")
}
