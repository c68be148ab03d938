package psf

import (
	"unicode/utf8"

	"github.com/npillmayer/ostools/errs"
	"golang.org/x/text/encoding/charmap"
)

// Unicode table markers.
const (
	v1Separator = 0xffff
	v1StartSeq  = 0xfffe
	v2Separator = 0xff
	v2StartSeq  = 0xfe
)

// parseUnicodeTable reads the table following the glyph bitmaps. For every
// glyph it holds the code points the glyph represents, terminated by a
// separator. Entries after a start-of-sequence marker describe combining
// sequences; these are skipped, as they do not map a single rune.
func parseUnicodeTable(f *Font) (map[rune]int, error) {
	const op = "psf.parseUnicodeTable"
	table := make(map[rune]int)
	pos := f.glyphOffset + f.glyphsSize
	for glyph := 0; glyph < f.header.GlyphCount(); glyph++ {
		inSeq := false
		for {
			if pos >= len(f.data) {
				return nil, errs.At(errs.KindTruncatedFile, op, pos,
					"unicode table ends within entry of glyph %d", glyph)
			}
			var r rune
			if f.header.Version() == 1 {
				u, err := f.data.u16(op, pos)
				if err != nil {
					return nil, err
				}
				pos += 2
				if u == v1Separator {
					break
				} else if u == v1StartSeq {
					inSeq = true
					continue
				}
				r = rune(u)
			} else {
				b := f.data[pos]
				if b == v2Separator {
					pos++
					break
				} else if b == v2StartSeq {
					pos++
					inSeq = true
					continue
				}
				var size int
				r, size = utf8.DecodeRune(f.data[pos:])
				if r == utf8.RuneError && size <= 1 {
					return nil, errs.At(errs.KindInvalidFormat, op, pos,
						"invalid UTF-8 in unicode table entry of glyph %d", glyph)
				}
				pos += size
			}
			if !inSeq {
				if _, exists := table[r]; !exists {
					table[r] = glyph
				}
			}
		}
	}
	tracer().Debugf("unicode table maps %d runes", len(table))
	return table, nil
}

// HasUnicodeTable reports whether the font carries its own rune mapping.
func (f *Font) HasUnicodeTable() bool {
	return f.unicode != nil
}

// GlyphIndex returns the glyph number for r. Fonts without a unicode table
// are assumed to be ordered like IBM code page 437, the VGA character set.
func (f *Font) GlyphIndex(r rune) (int, bool) {
	if f.unicode != nil {
		g, ok := f.unicode[r]
		return g, ok
	}
	b, ok := charmap.CodePage437.EncodeRune(r)
	if !ok || int(b) >= f.header.GlyphCount() {
		return 0, false
	}
	return int(b), true
}
