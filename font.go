/*
Package ostools generates x86 assembly source for early boot code.

It bundles the building blocks of the sub-packages into a few convenience
functions:

▪︎ Console fonts in PC Screen Font format (PSF1 and PSF2) are loaded and
emitted as labeled byte literals, ready to be included into a kernel's
text-mode or framebuffer console (see package psf).

▪︎ A Global Descriptor Table for a flat memory model is assembled from
bit-field builders (see package gdt). Custom layouts may be described in
YAML or Lua (see package gdtload).

Generated text is NASM-compatible. Package asm holds the emission
framework shared by all generators.

# Links

PSF format: https://www.win.tue.nl/~aeb/linux/kbd/font-formats-1.html

GDT: https://wiki.osdev.org/Global_Descriptor_Table

______________________________________________________________________

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package ostools

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/npillmayer/ostools/asm"
	"github.com/npillmayer/ostools/errs"
	"github.com/npillmayer/ostools/psf"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'ostools'
func tracer() tracing.Trace {
	return tracing.Select("ostools")
}

// ConsoleFont is a decoded PSF console font together with its origin.
type ConsoleFont struct {
	Fontname string    // file name without extension, empty if parsed from memory
	Filepath string    // file path, empty if parsed from memory
	Binary   []byte    // raw data
	PSF      *psf.Font // decoded font
}

// LoadPSF loads a PSF1 or PSF2 font from a file.
func LoadPSF(fontfile string) (*ConsoleFont, error) {
	bytez, err := os.ReadFile(fontfile)
	if err != nil {
		return nil, errs.Wrap(errs.KindIO, "ostools.LoadPSF", err)
	}
	f, err := ParsePSF(bytez)
	if err != nil {
		return nil, err
	}
	f.Filepath = fontfile
	base := filepath.Base(fontfile)
	f.Fontname = strings.TrimSuffix(base, filepath.Ext(base))
	tracer().Debugf("loaded console font %s", f.Fontname)
	return f, nil
}

// ParsePSF decodes a PSF1 or PSF2 font from memory.
// The buffer must not change after parsing.
func ParsePSF(fbytes []byte) (*ConsoleFont, error) {
	p, err := psf.Parse(fbytes)
	if err != nil {
		return nil, err
	}
	tracer().Debugf("parsed %s", p.Header())
	return &ConsoleFont{Binary: fbytes, PSF: p}, nil
}

// Assembly emits the glyphs of f as byte literals below label 'font_start'.
func (f *ConsoleFont) Assembly() (*asm.Document, error) {
	if f == nil || f.PSF == nil {
		return nil, errs.New(errs.KindCapability, "ostools.Assembly", "no font loaded")
	}
	return f.PSF.Emit()
}

// FontAssembly loads a PSF font file and emits its glyphs as assembly.
func FontAssembly(fontfile string) (*asm.Document, error) {
	f, err := LoadPSF(fontfile)
	if err != nil {
		return nil, err
	}
	return f.Assembly()
}
