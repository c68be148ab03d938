package psf

import (
	"os"

	"github.com/npillmayer/ostools/asm"
	"github.com/npillmayer/ostools/errs"
)

// Font is a decoded PSF font.
type Font struct {
	data        binarySegm
	header      Header
	glyphOffset int // start of the glyph table
	glyphsSize  int // length of the glyph table in bytes
	unicode     map[rune]int
	doc         *asm.Document
}

// Load reads and parses a PSF font file.
func Load(path string) (*Font, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errs.Wrap(errs.KindIO, "psf.Load", err)
	}
	f, err := Parse(data)
	if err != nil {
		return nil, err
	}
	tracer().Infof("loaded PSF%d font %s", f.header.Version(), path)
	return f, nil
}

// Parse decodes a PSF font from data. The Font keeps referring to data,
// which must not change afterwards.
func Parse(data []byte) (*Font, error) {
	const op = "psf.Parse"
	h, err := DecodeHeader(data)
	if err != nil {
		return nil, err
	}
	if err := checkGeometry(h, len(data)); err != nil {
		return nil, err
	}
	f := &Font{
		data:        binarySegm(data),
		header:      h,
		glyphOffset: h.Size(),
		glyphsSize:  h.GlyphCount() * h.CharSize(),
		doc:         asm.NewDocument(),
	}
	if _, err := f.data.view(op, f.glyphOffset, f.glyphsSize); err != nil {
		return nil, errs.At(errs.KindTruncatedFile, op, f.glyphOffset,
			"glyph table of %d bytes exceeds file size %d", f.glyphsSize, len(data))
	}
	if h.HasUnicodeTable() {
		if f.unicode, err = parseUnicodeTable(f); err != nil {
			return nil, err
		}
	}
	return f, nil
}

// checkGeometry rejects headers whose glyph cells cannot hold a bitmap of
// the declared dimensions, and glyph counts which cannot fit into size bytes.
// A font without glyphs passes.
func checkGeometry(h Header, size int) error {
	const op = "psf.Parse"
	count := h.GlyphCount()
	if count == 0 {
		return nil
	}
	w, ht := h.Dimensions()
	if w <= 0 || ht <= 0 {
		return errs.New(errs.KindInvalidFormat, op, "glyph size %dx%d", w, ht)
	}
	if need := (w + 7) / 8 * ht; h.CharSize() < need {
		return errs.New(errs.KindInvalidFormat, op,
			"%d bytes per glyph cannot hold %dx%d pixels (%d bytes)", h.CharSize(), w, ht, need)
	}
	if count > size/h.CharSize() {
		return errs.At(errs.KindTruncatedFile, op, h.Size(),
			"%d glyphs of %d bytes exceed file size %d", count, h.CharSize(), size)
	}
	return nil
}

// Header returns the decoded header.
func (f *Font) Header() Header {
	return f.header
}

// GlyphOffset returns the byte offset of the glyph table.
func (f *Font) GlyphOffset() int {
	return f.glyphOffset
}

// GlyphTableLength returns the size of the glyph table in bytes.
func (f *Font) GlyphTableLength() int {
	return f.glyphsSize
}

// RowBytes returns the number of bytes per glyph row. Rows are padded to
// whole bytes, so a 12 pixel wide glyph uses 2 bytes per row.
func (f *Font) RowBytes() int {
	w, _ := f.header.Dimensions()
	return (w + 7) / 8
}

// Glyph returns the CharSize bytes starting at byte offset index into the
// glyph table. Note that index is a byte offset, not a glyph number;
// use GlyphAt for the latter.
//
// Indices are accepted up to GlyphOffset+GlyphTableLength, provided the
// glyph bytes lie within the font data.
func (f *Font) Glyph(index int) ([]byte, error) {
	const op = "psf.Font.Glyph"
	if index < 0 || index >= f.glyphOffset+f.glyphsSize {
		return nil, errs.At(errs.KindRange, op, index, "index out of range")
	}
	b, err := f.data.view(op, f.glyphOffset+index, f.header.CharSize())
	if err != nil {
		return nil, errs.At(errs.KindRange, op, index, "glyph exceeds font data")
	}
	return b, nil
}

// GlyphAt returns the bitmap of glyph number n.
func (f *Font) GlyphAt(n int) ([]byte, error) {
	if n < 0 || n >= f.header.GlyphCount() {
		return nil, errs.At(errs.KindRange, "psf.Font.GlyphAt", n,
			"glyph %d out of range, font has %d glyphs", n, f.header.GlyphCount())
	}
	return f.Glyph(n * f.header.CharSize())
}

// Glyphs returns the complete glyph table.
func (f *Font) Glyphs() []byte {
	return f.data[f.glyphOffset : f.glyphOffset+f.glyphsSize]
}

// Assembly returns the document filled by the last call to Emit.
func (f *Font) Assembly() *asm.Document {
	return f.doc
}

// Emit fills the font's assembly document: a start label followed by one
// byte directive per glyph row, each row byte as zero-padded binary.
// Output of a previous call is discarded first.
func (f *Font) Emit() (*asm.Document, error) {
	const op = "psf.Font.Emit"
	f.doc.Clear()
	if w, _ := f.header.Dimensions(); w <= 0 {
		return nil, errs.New(errs.KindInvalidFormat, op, "glyph width %d", w)
	}
	if err := f.doc.AddLabel(asm.MustLabel(StartLabel)); err != nil {
		return nil, err
	}
	rowBytes, charSize := f.RowBytes(), f.header.CharSize()
	for i := 0; i < f.glyphsSize; i += charSize {
		glyph, err := f.Glyph(i)
		if err != nil {
			return nil, err
		}
		for r := 0; r < len(glyph); r += rowBytes {
			row := glyph[r:min(r+rowBytes, len(glyph))]
			values := make([]asm.Value, len(row))
			for j, b := range row {
				values[j] = asm.Int(b, asm.FormatPaddedBinary)
			}
			d, err := asm.DB(values...)
			if err != nil {
				return nil, err
			}
			if err := f.doc.Add(d); err != nil {
				return nil, err
			}
		}
	}
	tracer().Debugf("emitted %d glyphs, %d lines", f.header.GlyphCount(), f.doc.Len())
	return f.doc, nil
}

// Metadata returns a printable summary of the header.
func (f *Font) Metadata() string {
	return f.header.String()
}
