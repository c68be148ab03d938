package main

import (
	"errors"
	"strconv"
	"strings"

	"github.com/npillmayer/ostools/psf"
	"github.com/pterm/pterm"
)

func emitOp(intp *Intp, op *Op) (error, bool) {
	if intp.font == nil {
		return errNoFont, false
	}
	doc, err := intp.font.Assembly()
	if err != nil {
		return err, false
	}
	if op.arg == "" {
		pterm.Printf("%d lines of assembly, save with 'emit <file>'\n", doc.Len())
		return nil, false
	}
	if err = doc.SaveFile(op.arg); err == nil {
		pterm.Success.Printf("wrote %s\n", op.arg)
	}
	return err, false
}

// sheetOp writes the glyph sheet. Arguments: file [columns].
func sheetOp(intp *Intp, op *Op) (error, bool) {
	if intp.font == nil {
		return errNoFont, false
	}
	args := strings.Fields(op.arg)
	if len(args) == 0 {
		return errors.New("usage: sheet <file.png> [columns]"), false
	}
	columns := 16
	if len(args) > 1 {
		var err error
		if columns, err = strconv.Atoi(args[1]); err != nil || columns <= 0 {
			return errors.New("columns must be a positive number"), false
		}
	}
	if err := psf.WriteSheetPNG(intp.font.PSF, args[0], columns); err != nil {
		return err, false
	}
	pterm.Success.Printf("wrote %s\n", args[0])
	return nil, false
}
