package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/npillmayer/ostools"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testFont creates a PSF1 font of 8×2 pixels; glyph n has both rows set to n.
func testFont(t *testing.T) *ostools.ConsoleFont {
	data := []byte{0x36, 0x04, 0x00, 0x02}
	for n := 0; n < 256; n++ {
		data = append(data, byte(n), byte(n))
	}
	f, err := ostools.ParsePSF(data)
	require.NoError(t, err)
	return f
}

func TestParseCommand(t *testing.T) {
	op := parseCommand("glyph 65")
	assert.Equal(t, GLYPH, op.code)
	assert.Equal(t, "65", op.arg)
	op = parseCommand("  SHEET out.png 8 ")
	assert.Equal(t, SHEET, op.code)
	assert.Equal(t, "out.png 8", op.arg)
	op = parseCommand("frobnicate")
	assert.Equal(t, HELP, op.code)
	assert.Equal(t, "frobnicate", op.arg)
}

func TestParseRune(t *testing.T) {
	r, err := parseRune("A")
	require.NoError(t, err)
	assert.Equal(t, 'A', r)
	r, err = parseRune("U+00e4")
	require.NoError(t, err)
	assert.Equal(t, 'ä', r)
	_, err = parseRune("U+zz")
	assert.Error(t, err)
	_, err = parseRune("abc")
	assert.Error(t, err)
}

func TestGlyphArt(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "ostools")
	defer teardown()
	//
	f := testFont(t)
	art, err := glyphArt(f.PSF, 0x81)
	require.NoError(t, err)
	assert.Equal(t, "██············██\n██············██\n", art)
	_, err = glyphArt(f.PSF, 256)
	assert.Error(t, err)
}

func TestInterpreter(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "ostools")
	defer teardown()
	//
	intp := &Intp{}
	err, _ := intp.execute(parseCommand("info"))
	assert.ErrorIs(t, err, errNoFont)
	//
	intp.font = testFont(t)
	err, _ = intp.execute(parseCommand("find A"))
	require.NoError(t, err)
	assert.Equal(t, 'A', rune(intp.current))
	err, _ = intp.execute(parseCommand("next"))
	require.NoError(t, err)
	assert.Equal(t, 'B', rune(intp.current))
	err, _ = intp.execute(parseCommand("glyph 300"))
	assert.Error(t, err)
	assert.Equal(t, 'B', rune(intp.current), "failed command keeps current glyph")
	//
	path := filepath.Join(t.TempDir(), "font.asm")
	err, _ = intp.execute(parseCommand("emit " + path))
	require.NoError(t, err)
	_, err = os.Stat(path)
	assert.NoError(t, err)
	err, _ = intp.execute(parseCommand("sheet"))
	assert.Error(t, err)
	err, quit := intp.execute(parseCommand("quit"))
	assert.NoError(t, err)
	assert.True(t, quit)
}
