package psf

import (
	"image"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// Mask returns the bitmap of glyph number n as an alpha mask of the glyph's
// dimensions. Rows missing from a short glyph cell stay transparent.
func (f *Font) Mask(n int) (*image.Alpha, error) {
	glyph, err := f.GlyphAt(n)
	if err != nil {
		return nil, err
	}
	w, h := f.header.Dimensions()
	rowBytes := f.RowBytes()
	mask := image.NewAlpha(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		row := y * rowBytes
		for x := 0; x < w; x++ {
			i := row + x/8
			if i >= len(glyph) {
				break
			}
			if glyph[i]&(0x80>>(x%8)) != 0 {
				mask.Pix[y*mask.Stride+x] = 0xff
			}
		}
	}
	return mask, nil
}

// Face is a font.Face for a PSF font. All glyphs share the same advance.
// PSF carries no baseline information; the baseline is placed a quarter of
// the glyph height above the bottom of a cell.
type Face struct {
	font    *Font
	w, h    int
	descent int
}

var _ font.Face = (*Face)(nil)

// NewFace creates a face drawing the glyphs of f.
func NewFace(f *Font) *Face {
	w, h := f.header.Dimensions()
	return &Face{font: f, w: w, h: h, descent: h / 4}
}

// Close is a no-op.
func (face *Face) Close() error {
	return nil
}

// Glyph returns the mask of the glyph for r, positioned with its baseline
// at dot.
func (face *Face) Glyph(dot fixed.Point26_6, r rune) (
	dr image.Rectangle, mask image.Image, maskp image.Point, advance fixed.Int26_6, ok bool) {
	//
	n, ok := face.font.GlyphIndex(r)
	if !ok {
		return image.Rectangle{}, nil, image.Point{}, 0, false
	}
	m, err := face.font.Mask(n)
	if err != nil {
		tracer().Errorf("glyph %d for %q: %v", n, r, err)
		return image.Rectangle{}, nil, image.Point{}, 0, false
	}
	x, y := dot.X.Floor(), dot.Y.Floor()
	dr = image.Rect(x, y-(face.h-face.descent), x+face.w, y+face.descent)
	return dr, m, image.Point{}, fixed.I(face.w), true
}

// GlyphBounds returns the bounds of the glyph cell for r relative to the dot.
func (face *Face) GlyphBounds(r rune) (bounds fixed.Rectangle26_6, advance fixed.Int26_6, ok bool) {
	if _, ok = face.font.GlyphIndex(r); !ok {
		return fixed.Rectangle26_6{}, 0, false
	}
	bounds = fixed.Rectangle26_6{
		Min: fixed.P(0, -(face.h - face.descent)),
		Max: fixed.P(face.w, face.descent),
	}
	return bounds, fixed.I(face.w), true
}

// GlyphAdvance returns the cell width for every rune the font covers.
func (face *Face) GlyphAdvance(r rune) (advance fixed.Int26_6, ok bool) {
	if _, ok = face.font.GlyphIndex(r); !ok {
		return 0, false
	}
	return fixed.I(face.w), true
}

// Kern returns 0; bitmap console fonts are monospaced.
func (face *Face) Kern(r0, r1 rune) fixed.Int26_6 {
	return 0
}

// Metrics returns the metrics of the face.
func (face *Face) Metrics() font.Metrics {
	return font.Metrics{
		Height:     fixed.I(face.h),
		Ascent:     fixed.I(face.h - face.descent),
		Descent:    fixed.I(face.descent),
		XHeight:    fixed.I((face.h - face.descent) / 2),
		CapHeight:  fixed.I(face.h - face.descent),
		CaretSlope: image.Point{X: 0, Y: 1},
	}
}
