/*
Package psf reads Linux PC Screen Fonts (PSF) and turns their glyphs into
assembly byte literals.

Two header variants exist. Version 1 fonts start with the magic bytes
`36 04`, followed by a mode byte and the size of a character cell; glyphs are
always 8 pixels wide. Version 2 fonts start with `72 B5 4A 86`, followed by
seven little-endian 32-bit fields: version, header size, flags, glyph count,
bytes per glyph, height and width. Glyph bitmaps follow the header, one row
after the other, each row padded to whole bytes. An optional unicode table
follows the glyphs.

A Font is decoded completely by Parse; after that it is a read-only view
onto the caller's bytes, which must not change while the Font is in use.
Emit produces an asm.Document:

	font_start:

	db 00000000b
	db 00011000b
	…

Links:

▪︎ https://www.win.tue.nl/~aeb/linux/kbd/font-formats-1.html

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package psf

import "github.com/npillmayer/schuko/tracing"

// tracer writes to trace with key 'ostools.psf'
func tracer() tracing.Trace {
	return tracing.Select("ostools.psf")
}

// StartLabel is the label preceding the emitted glyph data.
const StartLabel = "font_start"
