package ostools

import (
	"github.com/npillmayer/ostools/gdt"
)

// Names of the segments of the flat GDT.
const (
	CodeSegment = "gdt_code"
	DataSegment = "gdt_data"
)

// DefaultFlatGDT assembles the GDT of a flat 32-bit protected mode memory
// model: one ring-0 code segment and one ring-0 data segment, both covering
// the full 4 GiB address space, followed by the end label and the
// descriptor record for LGDT.
//
// Selectors are 0x08 for code and 0x10 for data.
func DefaultFlatGDT() (*gdt.Table, error) {
	code := gdt.NewAccessByte().
		SetPresent(true).
		SetPrivilege(gdt.Ring0).
		SetDescriptorType(true).
		SetExecutable(true).
		SetReadWrite(true)
	data := gdt.NewAccessByte().
		SetPresent(true).
		SetPrivilege(gdt.Ring0).
		SetDescriptorType(true).
		SetReadWrite(true)
	table := gdt.NewTable()
	for _, seg := range []struct {
		name   string
		access *gdt.AccessByte
	}{
		{CodeSegment, code},
		{DataSegment, data},
	} {
		e := gdt.NewEntry(seg.name).SetBase(0).SetLimit(0xffff)
		if err := e.SetAccessByte(seg.access); err != nil {
			return nil, err
		}
		if err := e.SetFlags(gdt.NewFlags()); err != nil {
			return nil, err
		}
		if err := table.AddEntry(e); err != nil {
			return nil, err
		}
	}
	if err := table.AddEnd(); err != nil {
		return nil, err
	}
	if err := table.AddDescriptor(); err != nil {
		return nil, err
	}
	tracer().Debugf("assembled flat GDT, %d bytes", table.Size())
	return table, nil
}
