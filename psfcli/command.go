package main

import (
	"strings"

	"github.com/pterm/pterm"
)

// Op is a single parsed command, e.g. "glyph 65" or "find A".
type Op struct {
	code int
	arg  string
}

const (
	QUIT int = iota
	HELP
	INFO
	GLYPH
	NEXT
	PREV
	FIND
	EMIT
	SHEET
)

var opMap = map[string]int{
	"quit":  QUIT,
	"help":  HELP,
	"info":  INFO,
	"glyph": GLYPH,
	"next":  NEXT,
	"prev":  PREV,
	"find":  FIND,
	"emit":  EMIT,
	"sheet": SHEET,
}

var opNames = []string{
	"quit",
	"help",
	"info",
	"glyph",
	"next",
	"prev",
	"find",
	"emit",
	"sheet",
}

// parseCommand splits a line into op-code and argument. Unknown commands
// ask for help on themselves.
func parseCommand(line string) *Op {
	word, arg, _ := strings.Cut(strings.TrimSpace(line), " ")
	code, ok := opMap[strings.ToLower(word)]
	if !ok {
		return &Op{code: HELP, arg: word}
	}
	return &Op{code: code, arg: strings.TrimSpace(arg)}
}

var commandFn = map[int]func(*Intp, *Op) (error, bool){
	QUIT:  quitOp,
	HELP:  helpOp,
	INFO:  infoOp,
	GLYPH: glyphOp,
	NEXT:  nextOp,
	PREV:  prevOp,
	FIND:  findOp,
	EMIT:  emitOp,
	SHEET: sheetOp,
}

func (intp *Intp) execute(op *Op) (err error, stop bool) {
	tracer().Debugf("cmd = %s %q", opNames[op.code], op.arg)
	f, ok := commandFn[op.code]
	if !ok {
		pterm.Error.Printf("unknown command code: %d\n", op.code)
		return nil, false
	}
	return f(intp, op)
}

func quitOp(intp *Intp, op *Op) (error, bool) {
	return nil, true
}
