package main

import (
	"errors"
	"fmt"
	"image"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/pterm/pterm"
)

var errNoFont = errors.New("no font loaded")

type glyphMasker interface {
	Mask(n int) (*image.Alpha, error)
}

func infoOp(intp *Intp, op *Op) (error, bool) {
	if intp.font == nil {
		return errNoFont, false
	}
	h := intp.font.PSF.Header()
	w, ht := h.Dimensions()
	data := [][]string{
		{"Field", "Value"},
		{"Header", h.String()},
		{"Glyph size", fmt.Sprintf("%d×%d", w, ht)},
		{"Glyphs", strconv.Itoa(h.GlyphCount())},
		{"Bytes per glyph", strconv.Itoa(h.CharSize())},
		{"Unicode table", strconv.FormatBool(intp.font.PSF.HasUnicodeTable())},
	}
	return pterm.DefaultTable.WithHasHeader().WithData(data).Render(), false
}

func glyphOp(intp *Intp, op *Op) (error, bool) {
	if intp.font == nil {
		return errNoFont, false
	}
	n := intp.current
	if op.arg != "" {
		var err error
		if n, err = strconv.Atoi(op.arg); err != nil {
			return fmt.Errorf("glyph number not numeric: %v", op.arg), false
		}
	}
	return intp.show(n), false
}

func nextOp(intp *Intp, op *Op) (error, bool) {
	if intp.font == nil {
		return errNoFont, false
	}
	return intp.show(intp.current + 1), false
}

func prevOp(intp *Intp, op *Op) (error, bool) {
	if intp.font == nil {
		return errNoFont, false
	}
	return intp.show(intp.current - 1), false
}

func findOp(intp *Intp, op *Op) (error, bool) {
	if intp.font == nil {
		return errNoFont, false
	}
	r, err := parseRune(op.arg)
	if err != nil {
		return err, false
	}
	n, ok := intp.font.PSF.GlyphIndex(r)
	if !ok {
		return fmt.Errorf("font has no glyph for U+%04X", r), false
	}
	pterm.Printf("U+%04X %q is glyph %d\n", r, r, n)
	return intp.show(n), false
}

// show prints glyph n as a block of pixels and makes it the current glyph.
func (intp *Intp) show(n int) error {
	art, err := glyphArt(intp.font.PSF, n)
	if err != nil {
		return err
	}
	intp.current = n
	pterm.Printf("glyph %d\n%s", n, art)
	return nil
}

// glyphArt draws the glyph as text, two characters per pixel.
func glyphArt(f glyphMasker, n int) (string, error) {
	mask, err := f.Mask(n)
	if err != nil {
		return "", err
	}
	b := mask.Bounds()
	sb := strings.Builder{}
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if mask.AlphaAt(x, y).A != 0 {
				sb.WriteString("██")
			} else {
				sb.WriteString("··")
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String(), nil
}

// parseRune accepts a single character or a code point like U+00E4.
func parseRune(s string) (rune, error) {
	if s == "" {
		return 0, errors.New("need a character or code point")
	}
	if utf8.RuneCountInString(s) == 1 {
		r, _ := utf8.DecodeRuneInString(s)
		return r, nil
	}
	up := strings.ToUpper(s)
	if strings.HasPrefix(up, "U+") || strings.HasPrefix(up, "0X") {
		v, err := strconv.ParseUint(up[2:], 16, 32)
		if err != nil {
			return 0, fmt.Errorf("invalid code point %q", s)
		}
		return rune(v), nil
	}
	return 0, fmt.Errorf("invalid character %q", s)
}
