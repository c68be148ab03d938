/*
Package gdtload creates GDT tables from layout descriptions.

A layout may be given as YAML:

	descriptor: true
	selectors: true
	entries:
	  - name: gdt_code
	    limit: 0xffff
	    access: { present: true, ring: 0, descriptor: true, executable: true, rw: true }
	  - name: gdt_data
	    access: { present: true, descriptor: true, rw: true }

or as a Lua script calling `entry`, `descriptor` and `selectors`:

	entry{ name = "gdt_code", access = { present = true, descriptor = true, executable = true, rw = true } }
	entry{ name = "gdt_data", access = { present = true, descriptor = true, rw = true } }
	descriptor()

Entries without flags get the default flags (4 KiB granularity, 32-bit).
Entries without a limit get 0xffff.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package gdtload

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/npillmayer/ostools/errs"
	"github.com/npillmayer/ostools/gdt"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'ostools.gdtload'
func tracer() tracing.Trace {
	return tracing.Select("ostools.gdtload")
}

// Layout describes a complete GDT.
type Layout struct {
	Entries    []Entry `yaml:"entries"`
	Descriptor bool    `yaml:"descriptor"` // append the gdt_descriptor record
	Selectors  bool    `yaml:"selectors"`  // append NAME_SEG selector constants
}

// Entry describes one segment descriptor.
type Entry struct {
	Name   string  `yaml:"name"`
	Base   uint32  `yaml:"base"`
	Limit  *uint16 `yaml:"limit"`
	Access Access  `yaml:"access"`
	Flags  *Flags  `yaml:"flags"`
}

// Access describes the access byte. If Raw is set, the other fields are
// ignored.
type Access struct {
	Raw        *uint8 `yaml:"raw"`
	Present    bool   `yaml:"present"`
	Ring       uint8  `yaml:"ring"`
	Descriptor bool   `yaml:"descriptor"`
	Executable bool   `yaml:"executable"`
	DC         bool   `yaml:"dc"`
	RW         bool   `yaml:"rw"`
	Accessed   bool   `yaml:"accessed"`
}

// Flags describes the flags nibble. If Raw is set, the other fields are
// ignored and Raw is used as the complete flags byte.
type Flags struct {
	Raw         *uint8 `yaml:"raw"`
	Granularity bool   `yaml:"granularity"`
	Size        bool   `yaml:"size"`
	Long        bool   `yaml:"long"`
}

// Build creates the table described by l. The table is always closed by
// the end label.
func Build(l *Layout) (*gdt.Table, error) {
	t := gdt.NewTable()
	for _, el := range l.Entries {
		e, err := el.entry()
		if err != nil {
			return nil, err
		}
		if err := t.AddEntry(e); err != nil {
			return nil, err
		}
	}
	if err := t.AddEnd(); err != nil {
		return nil, err
	}
	if l.Descriptor {
		if err := t.AddDescriptor(); err != nil {
			return nil, err
		}
	}
	if l.Selectors {
		if err := t.AddSelectorConstants(); err != nil {
			return nil, err
		}
	}
	tracer().Debugf("built GDT with %d entries", len(l.Entries))
	return t, nil
}

func (el Entry) entry() (*gdt.Entry, error) {
	e := gdt.NewEntry(el.Name).SetBase(el.Base)
	if el.Limit != nil {
		e.SetLimit(*el.Limit)
	}
	access := el.Access.builder()
	if err := e.SetAccessByte(access); err != nil {
		return nil, err
	}
	if el.Flags != nil {
		if err := e.SetFlags(el.Flags.builder()); err != nil {
			return nil, err
		}
	}
	return e, nil
}

func (a Access) builder() *gdt.AccessByte {
	if a.Raw != nil {
		return gdt.AccessByteOf(*a.Raw)
	}
	return gdt.NewAccessByte().
		SetPresent(a.Present).
		SetPrivilege(gdt.Privilege(a.Ring)).
		SetDescriptorType(a.Descriptor).
		SetExecutable(a.Executable).
		SetDirectionConforming(a.DC).
		SetReadWrite(a.RW).
		SetAccessed(a.Accessed)
}

func (f Flags) builder() *gdt.Flags {
	if f.Raw != nil {
		return gdt.FlagsOf(*f.Raw)
	}
	return gdt.FlagsOf(0x0f).
		SetGranularity(f.Granularity).
		SetSize(f.Size).
		SetLongMode(f.Long)
}

// LoadFile reads a layout file and builds its table. The format is chosen
// by extension: .yaml, .yml or .lua.
func LoadFile(path string) (*gdt.Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errs.Wrap(errs.KindIO, "gdtload.LoadFile", err)
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		return FromYAML(data)
	case ".lua":
		return FromLua(string(data))
	default:
		return nil, errs.New(errs.KindInvalidFormat, "gdtload.LoadFile",
			"unknown layout format %q", ext)
	}
}
