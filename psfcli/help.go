package main

import (
	"strings"

	"github.com/pterm/pterm"
)

func helpOp(intp *Intp, op *Op) (error, bool) {
	help(op.arg)
	return nil, false
}

func help(topic string) {
	tracer().Infof("help %v", topic)
	switch strings.ToLower(topic) {
	case "glyph", "next", "prev":
		pterm.Info.Println("glyph [n] / next / prev")
		pterm.Println(`
	Show a glyph as a block of pixels. Glyphs are numbered from 0 in the
	order they appear in the font file. Without argument, the current glyph
	is shown again; next and prev step through the font.
	`)
	case "find":
		pterm.Info.Println("find <char>")
		pterm.Println(`
	Look up the glyph for a character, given literally (find A) or as a
	code point (find U+00E4). Fonts with a unicode table are searched
	through it; other fonts are assumed to be in code page 437 order.
	`)
	case "emit", "sheet":
		pterm.Info.Println("emit [file] / sheet <file.png> [columns]")
		pterm.Println(`
	emit writes the glyphs as NASM byte literals below label font_start.
	sheet renders all glyphs into a PNG image, 16 glyphs per row by default.
	`)
	default:
		pterm.Info.Println("Commands")
		pterm.Println(`
	info                  header fields of the font
	glyph [n], next, prev show glyphs
	find <char>           look up the glyph for a character
	emit [file]           glyphs as assembly
	sheet <file> [cols]   glyphs as PNG
	help [command]        this text, or help on a command
	quit                  leave (or <ctrl>D)
	`)
	}
}
