package psf

import (
	"image"
	"image/color"
	"image/png"
	"os"

	"github.com/npillmayer/ostools/errs"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

var (
	sheetGrid = color.RGBA{0xc0, 0xc0, 0xc0, 0xff}
	sheetInk  = image.NewUniform(color.Black)
	sheetBg   = image.NewUniform(color.White)
)

// RenderSheet draws all glyphs of f into a grid of the given number of
// columns, separated by 1-pixel grid lines.
func RenderSheet(f *Font, columns int) (*image.RGBA, error) {
	if columns <= 0 {
		columns = 16
	}
	w, h := f.header.Dimensions()
	count := f.header.GlyphCount()
	rows := (count + columns - 1) / columns
	img := image.NewRGBA(image.Rect(0, 0, 1+(w+1)*columns, 1+(h+1)*rows))
	draw.Draw(img, img.Bounds(), image.NewUniform(sheetGrid), image.Point{}, draw.Src)
	for n := 0; n < count; n++ {
		mask, err := f.Mask(n)
		if err != nil {
			return nil, err
		}
		x := 1 + (n%columns)*(w+1)
		y := 1 + (n/columns)*(h+1)
		cell := image.Rect(x, y, x+w, y+h)
		draw.Draw(img, cell, sheetBg, image.Point{}, draw.Src)
		draw.DrawMask(img, cell, sheetInk, image.Point{}, mask, image.Point{}, draw.Over)
	}
	tracer().Debugf("rendered %d glyphs in %d×%d grid", count, columns, rows)
	return img, nil
}

// RenderText draws text in a single line with face.
func RenderText(face font.Face, text string) *image.RGBA {
	m := face.Metrics()
	width := font.MeasureString(face, text).Ceil()
	img := image.NewRGBA(image.Rect(0, 0, max(width, 1), m.Height.Ceil()))
	draw.Draw(img, img.Bounds(), sheetBg, image.Point{}, draw.Src)
	d := font.Drawer{
		Dst:  img,
		Src:  sheetInk,
		Face: face,
		Dot:  fixed.Point26_6{X: 0, Y: m.Ascent},
	}
	d.DrawString(text)
	return img
}

// WritePNG encodes img to a PNG file at path.
func WritePNG(img image.Image, path string) (err error) {
	const op = "psf.WritePNG"
	out, err := os.Create(path)
	if err != nil {
		return errs.Wrap(errs.KindIO, op, err)
	}
	defer func() {
		if cerr := out.Close(); cerr != nil && err == nil {
			err = errs.Wrap(errs.KindIO, op, cerr)
		}
	}()
	if err = png.Encode(out, img); err != nil {
		return errs.Wrap(errs.KindIO, op, err)
	}
	return nil
}

// WriteSheetPNG renders the glyph sheet of f and writes it to a PNG file.
func WriteSheetPNG(f *Font, path string, columns int) error {
	img, err := RenderSheet(f, columns)
	if err != nil {
		return err
	}
	return WritePNG(img, path)
}
