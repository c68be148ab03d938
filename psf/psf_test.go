package psf

import (
	"encoding/binary"
	"errors"
	"image"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/npillmayer/ostools/errs"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"golang.org/x/image/math/fixed"
)

// --- Synthetic fonts -------------------------------------------------------

// makeV1 creates a PSF1 font. Glyph n has all row bytes set to n.
func makeV1(mode uint8, charSize int) []byte {
	count := 256
	if mode&V1Mode512 != 0 {
		count = 512
	}
	data := []byte{0x36, 0x04, mode, byte(charSize)}
	for n := 0; n < count; n++ {
		for r := 0; r < charSize; r++ {
			data = append(data, byte(n))
		}
	}
	return data
}

// makeV2 creates a PSF2 font with count glyphs of w×h pixels. Glyph n has
// all row bytes set to n.
func makeV2(count, w, h int, flags uint32) []byte {
	rowBytes := (w + 7) / 8
	charSize := rowBytes * h
	data := make([]byte, 32)
	copy(data, MagicV2)
	fields := []uint32{0, 32, flags, uint32(count), uint32(charSize), uint32(h), uint32(w)}
	for i, v := range fields {
		binary.LittleEndian.PutUint32(data[4+4*i:], v)
	}
	for n := 0; n < count; n++ {
		for i := 0; i < charSize; i++ {
			data = append(data, byte(n))
		}
	}
	return data
}

// --- Header ----------------------------------------------------------------

func TestDecodeHeader(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "ostools.psf")
	defer teardown()
	//
	h, err := DecodeHeader([]byte{0x36, 0x04, 0x00, 0x10})
	require.NoError(t, err)
	v1, ok := h.(*HeaderV1)
	require.True(t, ok, "expected PSF1 header, got %T", h)
	assert.Equal(t, 1, h.Version())
	assert.Equal(t, uint8(16), v1.BytesPerGlyph)
	w, ht := h.Dimensions()
	assert.Equal(t, 8, w)
	assert.Equal(t, 16, ht)
	assert.Equal(t, 256, h.GlyphCount())
	assert.Equal(t, 4, h.Size())
	//
	v2data := append(append([]byte{}, MagicV2...), make([]byte, 28)...)
	binary.LittleEndian.PutUint32(v2data[16:], 512)
	binary.LittleEndian.PutUint32(v2data[20:], 32)
	binary.LittleEndian.PutUint32(v2data[24:], 16)
	binary.LittleEndian.PutUint32(v2data[28:], 12)
	h, err = DecodeHeader(v2data)
	require.NoError(t, err)
	_, ok = h.(*HeaderV2)
	require.True(t, ok, "expected PSF2 header, got %T", h)
	assert.Equal(t, 512, h.GlyphCount())
	assert.Equal(t, 32, h.CharSize())
	w, ht = h.Dimensions()
	assert.Equal(t, 12, w)
	assert.Equal(t, 16, ht)
	assert.Equal(t, 32, h.Size(), "declared header size 0 is raised to 32")
	assert.True(t, strings.HasPrefix(h.String(), "psf v2"))
}

func TestDecodeHeaderFailures(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "ostools.psf")
	defer teardown()
	//
	tests := []struct {
		name string
		data []byte
		kind error
	}{
		{"empty", nil, errs.ErrTruncatedFile},
		{"one byte", []byte{0x36}, errs.ErrTruncatedFile},
		{"short v1", []byte{0x36, 0x04, 0x00}, errs.ErrTruncatedFile},
		{"short v2", append(append([]byte{}, MagicV2...), 0, 0, 0), errs.ErrTruncatedFile},
		{"unknown magic", []byte{0x7f, 'E', 'L', 'F', 0, 0, 0, 0}, errs.ErrInvalidFormat},
		{"two foreign bytes", []byte{0x00, 0x00}, errs.ErrInvalidFormat},
		{"v2 magic prefix only", []byte{0x72, 0xb5, 0x4a}, errs.ErrInvalidFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeHeader(tt.data)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.kind), "got %v", err)
		})
	}
}

func TestMode512(t *testing.T) {
	f, err := Parse(makeV1(V1Mode512, 8))
	require.NoError(t, err)
	assert.Equal(t, 512, f.Header().GlyphCount())
	assert.Equal(t, 512*8, f.GlyphTableLength())
}

// --- Font ------------------------------------------------------------------

type FontTestEnviron struct {
	suite.Suite
	v1 *Font
	v2 *Font
}

// listen for 'go test' command --> run test methods
func TestFontFunctions(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "ostools.psf")
	defer teardown()
	suite.Run(t, new(FontTestEnviron))
}

// run once, before test suite methods
func (env *FontTestEnviron) SetupSuite() {
	env.T().Log("Setting up test suite")
	tracing.Select("ostools.psf").SetTraceLevel(tracing.LevelError)
	var err error
	env.v1, err = Parse(makeV1(0, 16))
	env.Require().NoError(err)
	env.v2, err = Parse(makeV2(4, 12, 3, 0))
	env.Require().NoError(err)
	tracing.Select("ostools.psf").SetTraceLevel(tracing.LevelInfo)
}

func (env *FontTestEnviron) TestGeometry() {
	env.Equal(4, env.v1.GlyphOffset())
	env.Equal(256*16, env.v1.GlyphTableLength())
	env.Equal(1, env.v1.RowBytes())
	env.Equal(32, env.v2.GlyphOffset())
	env.Equal(4*6, env.v2.GlyphTableLength())
	env.Equal(2, env.v2.RowBytes())
	env.Len(env.v1.Glyphs(), 256*16)
}

func (env *FontTestEnviron) TestGlyphBounds() {
	g, err := env.v1.Glyph(0)
	env.Require().NoError(err)
	env.Len(g, 16)
	g, err = env.v1.Glyph(16) // byte offset of glyph 1
	env.Require().NoError(err)
	env.Equal(byte(1), g[0])
	//
	_, err = env.v1.Glyph(env.v1.GlyphOffset() + env.v1.GlyphTableLength())
	env.True(errors.Is(err, errs.ErrRange))
	_, err = env.v1.Glyph(-1)
	env.True(errors.Is(err, errs.ErrRange))
	_, err = env.v1.Glyph(env.v1.GlyphTableLength()) // below the bound, but past the data
	env.True(errors.Is(err, errs.ErrRange))
	//
	g, err = env.v2.GlyphAt(3)
	env.Require().NoError(err)
	env.Equal([]byte{3, 3, 3, 3, 3, 3}, g)
	_, err = env.v2.GlyphAt(4)
	env.True(errors.Is(err, errs.ErrRange))
}

func (env *FontTestEnviron) TestEmit() {
	doc, err := env.v2.Emit()
	env.Require().NoError(err)
	lines := strings.Split(doc.String(), "\n")
	env.Equal(StartLabel+":", lines[0])
	env.Equal("", lines[1])
	env.Equal("db 00000000b,00000000b", lines[2])
	env.Equal("db 00000011b,00000011b", lines[len(lines)-1])
	env.Equal(1+4*3, doc.Len())
	//
	doc, err = env.v2.Emit() // second pass must not duplicate output
	env.Require().NoError(err)
	env.Equal(1+4*3, doc.Len())
	env.Same(doc, env.v2.Assembly())
	//
	doc, err = env.v1.Emit()
	env.Require().NoError(err)
	env.Equal(1+256*16, doc.Len())
	env.Equal("db 11111111b", doc.Items()[doc.Len()-1].String())
}

func (env *FontTestEnviron) TestCodePageFallback() {
	env.False(env.v1.HasUnicodeTable())
	n, ok := env.v1.GlyphIndex('A')
	env.True(ok)
	env.Equal(0x41, n)
	n, ok = env.v1.GlyphIndex('█')
	env.True(ok)
	env.Equal(0xdb, n)
	_, ok = env.v1.GlyphIndex('€')
	env.False(ok)
	_, ok = env.v2.GlyphIndex('A') // only 4 glyphs
	env.False(ok)
}

func (env *FontTestEnviron) TestFace() {
	face := NewFace(env.v1)
	defer face.Close()
	dr, mask, _, adv, ok := face.Glyph(fixed.P(10, 20), 'A')
	env.Require().True(ok)
	env.Equal(fixed.I(8), adv)
	env.Equal(image.Rect(10, 8, 18, 24), dr)
	a, isAlpha := mask.(*image.Alpha)
	env.Require().True(isAlpha)
	// glyph 0x41 = 01000001b in every row
	env.Equal(uint8(0), a.AlphaAt(0, 0).A)
	env.Equal(uint8(0xff), a.AlphaAt(1, 0).A)
	env.Equal(uint8(0xff), a.AlphaAt(7, 15).A)
	//
	_, _, _, _, ok = face.Glyph(fixed.P(0, 0), '€')
	env.False(ok)
	adv, ok = face.GlyphAdvance('x')
	env.True(ok)
	env.Equal(fixed.I(8), adv)
	env.Equal(fixed.I(16), face.Metrics().Height)
	env.Equal(fixed.Int26_6(0), face.Kern('A', 'V'))
}

func (env *FontTestEnviron) TestMaskWideGlyph() {
	// glyph 3 of v2: every row 00000011 00000011, 12 pixels used
	m, err := env.v2.Mask(3)
	env.Require().NoError(err)
	env.Equal(image.Rect(0, 0, 12, 3), m.Bounds())
	env.Equal(uint8(0xff), m.AlphaAt(6, 2).A)
	env.Equal(uint8(0xff), m.AlphaAt(7, 2).A)
	env.Equal(uint8(0), m.AlphaAt(8, 2).A)
	env.Equal(uint8(0), m.AlphaAt(11, 2).A)
}

func (env *FontTestEnviron) TestSheet() {
	img, err := RenderSheet(env.v1, 16)
	env.Require().NoError(err)
	env.Equal(image.Rect(0, 0, 1+9*16, 1+17*16), img.Bounds())
	//
	txt := RenderText(NewFace(env.v1), "AB")
	env.Equal(16, txt.Bounds().Dx())
	env.Equal(16, txt.Bounds().Dy())
	//
	path := filepath.Join(env.T().TempDir(), "sheet.png")
	env.Require().NoError(WritePNG(img, path))
	info, err := os.Stat(path)
	env.Require().NoError(err)
	env.Greater(info.Size(), int64(0))
	err = WritePNG(img, filepath.Join(env.T().TempDir(), "no", "such", "dir.png"))
	env.True(errors.Is(err, errs.ErrIO))
	//
	sheet := filepath.Join(env.T().TempDir(), "v2.png")
	env.Require().NoError(WriteSheetPNG(env.v2, sheet, 0))
	_, err = os.Stat(sheet)
	env.NoError(err)
}

// --- Unicode tables --------------------------------------------------------

func TestUnicodeTableV2(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "ostools.psf")
	defer teardown()
	//
	data := makeV2(2, 8, 2, V2HasUnicodeTable)
	data = append(data, 'A')
	data = append(data, []byte("Ä")...)
	data = append(data, v2StartSeq, 'A', 0xcc, 0x88, v2Separator) // A + combining diaeresis
	data = append(data, 'B', v2Separator)
	f, err := Parse(data)
	require.NoError(t, err)
	require.True(t, f.HasUnicodeTable())
	for r, expected := range map[rune]int{'A': 0, 'Ä': 0, 'B': 1} {
		n, ok := f.GlyphIndex(r)
		assert.True(t, ok, "rune %q", r)
		assert.Equal(t, expected, n, "rune %q", r)
	}
	_, ok := f.GlyphIndex('\u0308')
	assert.False(t, ok, "sequence members must not be mapped")
	//
	_, err = Parse(data[:len(data)-1])
	assert.True(t, errors.Is(err, errs.ErrTruncatedFile))
}

func TestUnicodeTableV1(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "ostools.psf")
	defer teardown()
	//
	data := makeV1(V1ModeHasTab, 1)
	for n := 0; n < 256; n++ {
		data = binary.LittleEndian.AppendUint16(data, uint16(0x2500+n))
		data = binary.LittleEndian.AppendUint16(data, v1Separator)
	}
	f, err := Parse(data)
	require.NoError(t, err)
	n, ok := f.GlyphIndex('┐')
	assert.True(t, ok)
	assert.Equal(t, 0x10, n)
	_, ok = f.GlyphIndex('A')
	assert.False(t, ok)
}

// --- Loading ---------------------------------------------------------------

func TestLoad(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "ostools.psf")
	defer teardown()
	//
	path := filepath.Join(t.TempDir(), "font.psf")
	require.NoError(t, os.WriteFile(path, makeV2(2, 8, 8, 0), 0o644))
	f, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 2, f.Header().Version())
	assert.Contains(t, f.Metadata(), "Dimensions: 8x8")
	//
	_, err = Load(filepath.Join(t.TempDir(), "missing.psf"))
	assert.True(t, errors.Is(err, errs.ErrIO))
	assert.True(t, errors.Is(err, os.ErrNotExist))
	//
	truncated := makeV2(2, 8, 8, 0)
	_, err = Parse(truncated[:40])
	assert.True(t, errors.Is(err, errs.ErrTruncatedFile))
	//
	_, err = Parse(makeV2(1, 0, 2, 0))
	assert.True(t, errors.Is(err, errs.ErrInvalidFormat), "zero width with glyphs")
	f, err = Parse(makeV2(0, 0, 2, 0))
	require.NoError(t, err)
	_, err = f.Emit()
	assert.True(t, errors.Is(err, errs.ErrInvalidFormat))
}

// v2Header creates a bare PSF2 header followed by n zero bytes.
func v2Header(length, charSize, h, w uint32, n int) []byte {
	data := make([]byte, 32+n)
	copy(data, MagicV2)
	for i, v := range []uint32{0, 32, 0, length, charSize, h, w} {
		binary.LittleEndian.PutUint32(data[4+4*i:], v)
	}
	return data
}

func TestParseGeometry(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "ostools.psf")
	defer teardown()
	//
	for _, tc := range []struct {
		name string
		data []byte
		kind error
	}{
		{"huge glyph in 1 byte", v2Header(1, 1, 0xffffffff, 0xffffffff, 1), errs.ErrInvalidFormat},
		{"cell too small", v2Header(1, 3, 2, 12, 3), errs.ErrInvalidFormat},
		{"zero height", v2Header(1, 1, 0, 8, 1), errs.ErrInvalidFormat},
		{"empty glyphs, huge count", v2Header(0xffffffff, 0, 0, 0, 0), errs.ErrInvalidFormat},
		{"huge count", v2Header(0xffffffff, 0xffffffff, 0xffffffff, 1, 4), errs.ErrTruncatedFile},
		{"v1 zero char size", []byte{0x36, 0x04, 0x00, 0x00}, errs.ErrInvalidFormat},
	} {
		_, err := Parse(tc.data)
		assert.True(t, errors.Is(err, tc.kind), "%s: %v", tc.name, err)
	}
	f, err := Parse(v2Header(1, 4, 2, 12, 4))
	require.NoError(t, err)
	m, err := f.Mask(0)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 12, 2), m.Bounds())
}
