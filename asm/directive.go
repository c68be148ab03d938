package asm

import (
	"strings"

	"github.com/npillmayer/ostools/errs"
)

// Mnemonic is the pseudo-instruction of a data directive.
type Mnemonic string

const (
	Byte   Mnemonic = "db" // define byte
	Word   Mnemonic = "dw" // define word
	Double Mnemonic = "dd" // define double word
)

// Directive is a data directive: a mnemonic with one or more operands,
// rendered as "db v1,v2,...".
type Directive struct {
	mnemonic Mnemonic
	values   []Value
	operands []string
}

// NewDirective creates a data directive. At least one value is required and
// every value has to be renderable.
func NewDirective(m Mnemonic, values ...Value) (*Directive, error) {
	if m == "" {
		return nil, errs.New(errs.KindInvalidFormat, "asm.NewDirective", "empty mnemonic")
	}
	if len(values) == 0 {
		return nil, errs.New(errs.KindInvalidFormat, "asm.NewDirective",
			"directive %s needs at least one operand", m)
	}
	d := &Directive{
		mnemonic: m,
		values:   append([]Value(nil), values...),
		operands: make([]string, len(values)),
	}
	for i, v := range values {
		s, err := v.Render()
		if err != nil {
			return nil, err
		}
		d.operands[i] = s
	}
	return d, nil
}

// DB creates a byte directive.
func DB(values ...Value) (*Directive, error) {
	return NewDirective(Byte, values...)
}

// DW creates a word directive.
func DW(values ...Value) (*Directive, error) {
	return NewDirective(Word, values...)
}

// DD creates a double-word directive.
func DD(values ...Value) (*Directive, error) {
	return NewDirective(Double, values...)
}

// MustDB is like DB, but panics on error.
func MustDB(values ...Value) *Directive {
	return must(DB(values...))
}

// MustDW is like DW, but panics on error.
func MustDW(values ...Value) *Directive {
	return must(DW(values...))
}

// MustDD is like DD, but panics on error.
func MustDD(values ...Value) *Directive {
	return must(DD(values...))
}

func must(d *Directive, err error) *Directive {
	if err != nil {
		panic(err)
	}
	return d
}

// Mnemonic returns the directive's mnemonic.
func (d *Directive) Mnemonic() Mnemonic {
	return d.mnemonic
}

// Values returns the operands.
func (d *Directive) Values() []Value {
	return append([]Value(nil), d.values...)
}

func (d *Directive) String() string {
	return string(d.mnemonic) + " " + strings.Join(d.operands, ",")
}

// --- Constants -------------------------------------------------------------

// Equ defines an assembler constant, rendered as "NAME equ value".
type Equ struct {
	name    string
	operand string
}

// NewEqu creates a constant definition. The name must not be empty and the
// value has to be renderable.
func NewEqu(name string, v Value) (*Equ, error) {
	if name == "" {
		return nil, errs.New(errs.KindInvalidFormat, "asm.NewEqu", "constant name must not be empty")
	}
	s, err := v.Render()
	if err != nil {
		return nil, err
	}
	return &Equ{name: name, operand: s}, nil
}

// Name returns the name of the constant.
func (e *Equ) Name() string {
	return e.name
}

func (e *Equ) String() string {
	return e.name + " equ " + e.operand
}
