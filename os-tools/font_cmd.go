package main

import (
	"fmt"
	"strings"

	"github.com/npillmayer/ostools"
	"github.com/npillmayer/ostools/errs"
	"github.com/pterm/pterm"
	"github.com/thatisuday/commando"
)

func runFontCommand(args map[string]commando.ArgValue, flags map[string]commando.FlagValue) {
	setVerbosity(flags)
	f := mustLoadFont(args["font"].Value)
	doc, err := f.Assembly()
	if err != nil {
		fatalf("cannot emit font %s: %v", f.Filepath, err)
	}
	emit(doc, flags)
}

func runPSFCommand(args map[string]commando.ArgValue, flags map[string]commando.FlagValue) {
	setVerbosity(flags)
	f := mustLoadFont(args["font"].Value)
	if err := pterm.DefaultTable.WithHasHeader().WithData(fontInfo(f)).Render(); err != nil {
		fatalf("%v", err)
	}
	runes := []rune(strings.Join(splitCSVSpace(args["runes"].Value), ""))
	if len(runes) == 0 {
		return
	}
	data := [][]string{{"Rune", "Code point", "Glyph"}}
	for _, r := range runes {
		glyph := "missing"
		if n, ok := f.PSF.GlyphIndex(r); ok {
			glyph = fmt.Sprintf("%d", n)
		}
		data = append(data, []string{string(r), fmt.Sprintf("U+%04X", r), glyph})
	}
	if err := pterm.DefaultTable.WithHasHeader().WithData(data).Render(); err != nil {
		fatalf("%v", err)
	}
}

// fontInfo lists the header fields and derived geometry of f.
func fontInfo(f *ostools.ConsoleFont) [][]string {
	h := f.PSF.Header()
	w, ht := h.Dimensions()
	unicode := "no"
	if f.PSF.HasUnicodeTable() {
		unicode = "yes"
	}
	return [][]string{
		{"Field", "Value"},
		{"Path", f.Filepath},
		{"Format", fmt.Sprintf("PSF%d", h.Version())},
		{"Glyph size", fmt.Sprintf("%d×%d", w, ht)},
		{"Glyphs", fmt.Sprintf("%d", h.GlyphCount())},
		{"Bytes per glyph", fmt.Sprintf("%d", h.CharSize())},
		{"Bytes per row", fmt.Sprintf("%d", f.PSF.RowBytes())},
		{"Header size", fmt.Sprintf("%d", h.Size())},
		{"Glyph table", fmt.Sprintf("%d bytes at offset %d", f.PSF.GlyphTableLength(), f.PSF.GlyphOffset())},
		{"Unicode table", unicode},
	}
}

func mustLoadFont(path string) *ostools.ConsoleFont {
	path = strings.TrimSpace(path)
	if path == "" {
		fatalf("font path is required")
	}
	f, err := ostools.LoadPSF(path)
	if err != nil {
		fatalf("%s", loadFailure(path, err))
	}
	return f
}

// loadFailure explains why path could not be loaded as a font.
func loadFailure(path string, err error) string {
	switch errs.KindOf(err) {
	case errs.KindIO:
		return fmt.Sprintf("cannot read font %s: %v", path, err)
	case errs.KindInvalidFormat:
		return fmt.Sprintf("%s is not a usable PSF1 or PSF2 font: %v", path, err)
	case errs.KindTruncatedFile:
		return fmt.Sprintf("font %s is truncated: %v", path, err)
	default:
		return fmt.Sprintf("cannot load font %s: %v", path, err)
	}
}

func splitCSVSpace(list string) []string {
	return strings.FieldsFunc(list, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n'
	})
}
