package main

import (
	"image"

	"github.com/npillmayer/ostools/psf"
	"github.com/pterm/pterm"
	"github.com/thatisuday/commando"
)

func runSheetCommand(args map[string]commando.ArgValue, flags map[string]commando.FlagValue) {
	setVerbosity(flags)
	f := mustLoadFont(args["font"].Value)
	outPath := mustFlagString(flags["output"], "output")
	if outPath == "" {
		fatalf("output path is empty")
	}
	columns := mustFlagInt(flags["columns"], "columns")
	if columns <= 0 {
		fatalf("--columns must be > 0")
	}
	var img image.Image
	if text := mustFlagString(flags["text"], "text"); text != "" && text != "-" {
		img = psf.RenderText(psf.NewFace(f.PSF), text)
	} else {
		sheet, err := psf.RenderSheet(f.PSF, columns)
		if err != nil {
			fatalf("render failed: %v", err)
		}
		img = sheet
	}
	if err := psf.WritePNG(img, outPath); err != nil {
		fatalf("%v", err)
	}
	b := img.Bounds()
	pterm.Success.Printf("wrote %s (%d×%d)\n", outPath, b.Dx(), b.Dy())
}
