package gdt

import (
	"fmt"
	"strings"

	"github.com/npillmayer/ostools/asm"
	"github.com/npillmayer/ostools/errs"
)

// Label names used by a Table.
const (
	StartLabel      = "gdt_start"
	NullLabel       = "gdt_null"
	EndLabel        = "gdt_end"
	DescriptorLabel = "gdt_descriptor"
)

// EntrySize is the size of a segment descriptor in bytes.
const EntrySize = 8

// Table is the assembly source of a GDT. It embeds the document it emits
// to, so it may be printed or saved like any asm.Document.
type Table struct {
	*asm.Document
	entries []*Entry // without the null descriptor
	closed  bool
}

// NewTable creates a table holding the start label and the null descriptor.
func NewTable() *Table {
	t := &Table{Document: asm.NewDocument()}
	t.mustAdd(asm.MustLabel(StartLabel))
	t.mustAdd(asm.MustLabel(NullLabel).
		Add(asm.MustDD(asm.Int(0, asm.FormatHex))).
		Add(asm.MustDD(asm.Int(0, asm.FormatHex))))
	return t
}

func (t *Table) mustAdd(l *asm.Label) {
	if err := t.AddLabel(l); err != nil {
		panic(err)
	}
}

// AddEntry encodes e and appends it. An entry without a name is called
// gdt_entry_<n>, n being its index in the table. Entries cannot be added
// after AddEnd.
func (t *Table) AddEntry(e *Entry) error {
	if e == nil {
		return errs.New(errs.KindCapability, "gdt.Table.AddEntry", "nil entry")
	}
	if t.closed {
		return errs.New(errs.KindInvalidFormat, "gdt.Table.AddEntry",
			"cannot add entry %q after %s", e.name, EndLabel)
	}
	name := e.name
	if name == "" {
		e.name = fmt.Sprintf("gdt_entry_%d", len(t.entries)+1)
	}
	l, err := e.Encode()
	if err == nil {
		err = t.AddLabel(l)
	}
	if err != nil {
		e.name = name
		return err
	}
	t.entries = append(t.entries, e)
	tracer().Debugf("GDT entry %d: %s", len(t.entries), e.name)
	return nil
}

// AddEnd appends the end label. The table's size is measured up to it.
func (t *Table) AddEnd() error {
	if err := t.AddLabel(asm.MustLabel(EndLabel)); err != nil {
		return err
	}
	t.closed = true
	return nil
}

// AddDescriptor appends the GDT descriptor: its size minus one and the
// address of the table, as loaded by `lgdt`. It requires the end label.
func (t *Table) AddDescriptor() error {
	if !t.closed {
		return errs.New(errs.KindInvalidFormat, "gdt.Table.AddDescriptor",
			"descriptor refers to %s, which has not been added", EndLabel)
	}
	size := fmt.Sprintf("%s - %s - 1", EndLabel, StartLabel)
	return t.AddLabel(asm.MustLabel(DescriptorLabel).
		Add(asm.MustDW(asm.Symbol(size))).
		Add(asm.MustDW(asm.Symbol(StartLabel))))
}

// Entries returns the entries added so far, without the null descriptor.
func (t *Table) Entries() []*Entry {
	return append([]*Entry(nil), t.entries...)
}

// Selector returns the segment selector (byte offset into the table) of the
// entry called name. The null descriptor has selector 0.
func (t *Table) Selector(name string) (uint16, error) {
	if name == NullLabel {
		return 0, nil
	}
	for i, e := range t.entries {
		if e.name == name {
			return uint16((i + 1) * EntrySize), nil
		}
	}
	return 0, errs.New(errs.KindRange, "gdt.Table.Selector", "no entry %q", name)
}

// AddSelectorConstants appends one constant per entry, e.g.
//
//	GDT_CODE_SEG equ 0x8
func (t *Table) AddSelectorConstants() error {
	for i, e := range t.entries {
		c, err := asm.NewEqu(strings.ToUpper(e.name)+"_SEG", asm.Int((i+1)*EntrySize, asm.FormatHex))
		if err != nil {
			return err
		}
		if err := t.Add(c); err != nil {
			return err
		}
	}
	return nil
}

// Size returns the size of the table in bytes, including the null descriptor.
func (t *Table) Size() int {
	return (len(t.entries) + 1) * EntrySize
}
