package psf

import (
	"encoding/binary"
	"fmt"

	"github.com/npillmayer/ostools/errs"
)

// Magic numbers and header flags.
var (
	MagicV1 = []byte{0x36, 0x04}
	MagicV2 = []byte{0x72, 0xb5, 0x4a, 0x86}
)

const (
	headerSizeV1 = 4
	headerSizeV2 = 32

	V1Mode512    = 0x01 // font has 512 glyphs instead of 256
	V1ModeHasTab = 0x02 // font has a unicode table
	V1ModeHasSeq = 0x04 // unicode table contains sequences

	V2HasUnicodeTable = 0x01
)

// Header is the decoded header of a PSF font. It is implemented by
// *HeaderV1 and *HeaderV2 only; use a type switch to access version-specific
// fields.
type Header interface {
	Version() int
	Dimensions() (width, height int) // glyph size in pixels
	GlyphCount() int                 // number of glyphs
	CharSize() int                   // bytes per glyph
	Size() int                       // header size in bytes; glyphs start here
	HasUnicodeTable() bool
	String() string
	sealed()
}

// HeaderV1 is the 4-byte header of a PSF version 1 font.
type HeaderV1 struct {
	Magic         [2]byte
	Mode          uint8
	BytesPerGlyph uint8 // equals the glyph height
}

// HeaderV2 is the 32-byte header of a PSF version 2 font.
type HeaderV2 struct {
	Magic         [4]byte
	FormatVersion uint32
	HeaderSize    uint32 // offset of the glyph bitmaps
	Flags         uint32
	Length        uint32 // number of glyphs
	BytesPerGlyph uint32
	Height        uint32
	Width         uint32
}

// DecodeHeader decodes the header at the start of data. The variant is
// chosen by the magic bytes: version 1 is tested first, then version 2.
func DecodeHeader(data []byte) (Header, error) {
	const op = "psf.DecodeHeader"
	src := binarySegm(data)
	if len(src) < len(MagicV1) {
		return nil, errs.At(errs.KindTruncatedFile, op, 0,
			"file content is too short for a font (%d bytes)", len(src))
	}
	switch {
	case src.hasPrefix(MagicV1):
		buf, err := src.view(op, 0, headerSizeV1)
		if err != nil {
			return nil, err
		}
		h := &HeaderV1{}
		if err := binary.Read(buf.Reader(), binary.LittleEndian, h); err != nil {
			return nil, errs.Wrap(errs.KindTruncatedFile, op, err)
		}
		tracer().Debugf("PSF1 header: mode=%#x, charsize=%d", h.Mode, h.BytesPerGlyph)
		return h, nil
	case src.hasPrefix(MagicV2):
		buf, err := src.view(op, 0, headerSizeV2)
		if err != nil {
			return nil, err
		}
		h := &HeaderV2{}
		if err := binary.Read(buf.Reader(), binary.LittleEndian, h); err != nil {
			return nil, errs.Wrap(errs.KindTruncatedFile, op, err)
		}
		tracer().Debugf("PSF2 header: %d glyphs of %dx%d, %d bytes each", h.Length, h.Width, h.Height, h.BytesPerGlyph)
		return h, nil
	}
	return nil, errs.At(errs.KindInvalidFormat, op, 0, "not a PSF font, magic % x", data[:min(4, len(data))])
}

// --- Version 1 -------------------------------------------------------------

func (h *HeaderV1) sealed() {}

// Version returns 1.
func (h *HeaderV1) Version() int { return 1 }

// Dimensions returns (8, BytesPerGlyph).
func (h *HeaderV1) Dimensions() (int, int) {
	return 8, int(h.BytesPerGlyph)
}

// GlyphCount is 256, or 512 if the mode says so.
func (h *HeaderV1) GlyphCount() int {
	if h.Mode&V1Mode512 != 0 {
		return 512
	}
	return 256
}

func (h *HeaderV1) CharSize() int { return int(h.BytesPerGlyph) }

func (h *HeaderV1) Size() int { return headerSizeV1 }

func (h *HeaderV1) HasUnicodeTable() bool {
	return h.Mode&(V1ModeHasTab|V1ModeHasSeq) != 0
}

func (h *HeaderV1) String() string {
	return fmt.Sprintf("psf v1\nMode: %d\nCharacter size: %d", h.Mode, h.BytesPerGlyph)
}

// --- Version 2 -------------------------------------------------------------

func (h *HeaderV2) sealed() {}

// Version returns 2.
func (h *HeaderV2) Version() int { return 2 }

// Dimensions returns (Width, Height).
func (h *HeaderV2) Dimensions() (int, int) {
	return int(h.Width), int(h.Height)
}

func (h *HeaderV2) GlyphCount() int { return int(h.Length) }

func (h *HeaderV2) CharSize() int { return int(h.BytesPerGlyph) }

// Size returns the declared header size, but never less than 32 bytes.
func (h *HeaderV2) Size() int {
	return max(int(h.HeaderSize), headerSizeV2)
}

func (h *HeaderV2) HasUnicodeTable() bool {
	return h.Flags&V2HasUnicodeTable != 0
}

func (h *HeaderV2) String() string {
	return fmt.Sprintf("psf v2\nCharacter size: %d\nDimensions: %dx%d", h.BytesPerGlyph, h.Width, h.Height)
}
