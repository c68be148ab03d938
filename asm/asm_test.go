package asm

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/npillmayer/ostools/errs"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValueFormats(t *testing.T) {
	tests := []struct {
		value    Value
		expected string
	}{
		{Int(42, FormatDecimal), "42"},
		{Int(-3, FormatDecimal), "-3"},
		{Int(0xffff, FormatHex), "0xffff"},
		{Int(0x9A, FormatHex), "0x9a"},
		{Int(0, FormatHex), "0x0"},
		{Int(-1, FormatHex), "-0x1"},
		{Int(0xcf, FormatBinary), "11001111b"},
		{Int(0, FormatBinary), "0b"},
		{Int(5, FormatPaddedBinary), "00000101b"},
		{Int(0x1ff, FormatPaddedBinary), "0000000111111111b"},
		{Int('A', FormatChar), "A"},
		{Symbol("gdt_end - gdt_start - 1"), "gdt_end - gdt_start - 1"},
	}
	for _, tt := range tests {
		s, err := tt.value.Render()
		require.NoError(t, err)
		assert.Equal(t, tt.expected, s)
	}
}

func TestPaddedBinaryByte(t *testing.T) {
	for v := 0; v < 256; v++ {
		s, err := Int(v, FormatPaddedBinary).Render()
		require.NoError(t, err)
		require.Len(t, s, 9, "padded binary of %d", v)
		assert.True(t, strings.HasSuffix(s, "b"))
		//
		u, err := Int(v, FormatBinary).Render()
		require.NoError(t, err)
		if v != 0 {
			assert.False(t, strings.HasPrefix(u, "0"), "unpadded binary of %d has leading zero", v)
		}
		assert.Equal(t, s[9-len(u):], u)
	}
}

func TestCharFormat(t *testing.T) {
	for v := 0; v < 256; v++ {
		s, err := Int(v, FormatChar).Render()
		require.NoError(t, err)
		assert.Equal(t, []rune{rune(v)}, []rune(s))
	}
	for _, v := range []int{256, 1000, -1} {
		_, err := Int(v, FormatChar).Render()
		assert.True(t, errors.Is(err, errs.ErrOverflow), "char of %d", v)
	}
	_, err := Int(1, Format(99)).Render()
	assert.True(t, errors.Is(err, errs.ErrInvalidFormat))
	assert.Contains(t, Int(300, FormatChar).String(), "error")
}

func TestDirective(t *testing.T) {
	d, err := DB(Int(1, FormatDecimal), Int(255, FormatHex), Int(3, FormatPaddedBinary))
	require.NoError(t, err)
	assert.Equal(t, "db 1,0xff,00000011b", d.String())
	assert.Equal(t, Byte, d.Mnemonic())
	assert.Len(t, d.Values(), 3)
	//
	_, err = DW()
	assert.True(t, errors.Is(err, errs.ErrInvalidFormat), "directive without operands")
	_, err = DD(Int(999, FormatChar))
	assert.True(t, errors.Is(err, errs.ErrOverflow))
	assert.Panics(t, func() { MustDB() })
	//
	equ, err := NewEqu("CODE_SEG", Int(8, FormatHex))
	require.NoError(t, err)
	assert.Equal(t, "CODE_SEG equ 0x8", equ.String())
	assert.Equal(t, "CODE_SEG", equ.Name())
	_, err = NewEqu("GLYPH", Int(300, FormatChar))
	assert.True(t, errors.Is(err, errs.ErrOverflow), "constant with unrenderable value")
	_, err = NewEqu("", Int(1, FormatDecimal))
	assert.True(t, errors.Is(err, errs.ErrInvalidFormat))
}

func TestLabel(t *testing.T) {
	_, err := NewLabel("")
	assert.True(t, errors.Is(err, errs.ErrInvalidFormat))
	//
	l := MustLabel("gdt_null").
		Add(MustDD(Int(0, FormatHex))).
		Add(MustDD(Int(0, FormatHex)))
	require.NoError(t, l.Err())
	assert.Equal(t, "gdt_null:\n    dd 0x0\n    dd 0x0\n", l.String())
	assert.Equal(t, "gdt_start:\n", MustLabel("gdt_start").String())
	//
	l.Add(nil)
	assert.True(t, errors.Is(l.Err(), errs.ErrCapability))
	assert.Equal(t, 2, l.Len())
	l.Clear()
	assert.NoError(t, l.Err())
	assert.Equal(t, 0, l.Len())
}

func TestStore(t *testing.T) {
	var s Store
	require.NoError(t, s.Add(MustDB(Int(1, FormatDecimal))))
	require.NoError(t, s.Add(MustDB(Int(2, FormatDecimal))))
	err := s.Add(nil)
	assert.True(t, errors.Is(err, errs.ErrCapability))
	items := s.Items()
	require.Len(t, items, 2)
	assert.Equal(t, "db 1", items[0].String())
	assert.Equal(t, "db 2", items[1].String())
	items[0] = nil // the view is a copy
	assert.NotNil(t, s.Items()[0])
	s.Clear()
	assert.Equal(t, 0, s.Len())
}

func TestDocumentUniqueLabels(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "ostools.asm")
	defer teardown()
	//
	d := NewDocument()
	require.NoError(t, d.AddLabel(MustLabel("start").Add(MustDB(Int(1, FormatDecimal)))))
	before := d.String()
	err := d.AddLabel(MustLabel("start"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, errs.ErrDuplicateLabel))
	assert.Equal(t, before, d.String())
	assert.Equal(t, 1, d.Len())
	assert.True(t, d.LabelExists("start"))
	assert.False(t, d.LabelExists("end"))
	//
	err = d.Add(MustLabel("start")) // labels added as items are checked, too
	assert.True(t, errors.Is(err, errs.ErrDuplicateLabel))
	//
	broken := MustLabel("broken").Add(nil)
	assert.True(t, errors.Is(d.AddLabel(broken), errs.ErrCapability))
	assert.False(t, d.LabelExists("broken"))
	//
	d.Clear()
	assert.Equal(t, 0, d.Len())
	assert.NoError(t, d.AddLabel(MustLabel("start")))
}

func TestDocumentRendering(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "ostools.asm")
	defer teardown()
	//
	d := NewDocument()
	require.NoError(t, d.AddLabel(MustLabel("font_start")))
	require.NoError(t, d.Add(MustDB(Int(0x18, FormatPaddedBinary))))
	require.NoError(t, d.AddLabel(MustLabel("font_end").Add(MustDW(Symbol("font_end - font_start")))))
	expected := "font_start:\n\ndb 00011000b\nfont_end:\n    dw font_end - font_start\n"
	assert.Equal(t, expected, d.String())
	//
	sb := &strings.Builder{}
	n, err := d.WriteTo(sb)
	require.NoError(t, err)
	assert.Equal(t, int64(len(expected)), n)
	assert.Equal(t, expected, sb.String())
}

func TestDocumentSaveFile(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "ostools.asm")
	defer teardown()
	//
	d := NewDocument()
	require.NoError(t, d.AddLabel(MustLabel("x").Add(MustDB(Int(7, FormatDecimal)))))
	path := filepath.Join(t.TempDir(), "out.asm")
	require.NoError(t, os.WriteFile(path, []byte("old content which is longer"), 0o644))
	require.NoError(t, d.SaveFile(path))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "x:\n    db 7\n", string(data))
	//
	err = d.SaveFile(filepath.Join(t.TempDir(), "missing", "dir", "out.asm"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, errs.ErrIO))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}
