package asm

import (
	"strconv"
	"strings"

	"github.com/npillmayer/ostools/errs"
)

// Format selects how an integer value is written to the source.
type Format int

const (
	FormatDecimal      Format = iota // 42
	FormatHex                        // 0x2a
	FormatBinary                     // 101010b
	FormatPaddedBinary               // 00101010b, padded to whole bytes
	FormatChar                       // the character with this code point (0…255)
)

func (f Format) String() string {
	switch f {
	case FormatDecimal:
		return "decimal"
	case FormatHex:
		return "hex"
	case FormatBinary:
		return "binary"
	case FormatPaddedBinary:
		return "padded-binary"
	case FormatChar:
		return "char"
	}
	return "Format(" + strconv.Itoa(int(f)) + ")"
}

type integer interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 | ~uint | ~uint8 | ~uint16 | ~uint32
}

// Value is a typed literal: either an integer with a format, or a symbolic
// expression which is emitted verbatim (e.g. "gdt_end - gdt_start - 1").
type Value struct {
	n        int64
	sym      string
	symbolic bool
	format   Format
}

// Int creates an integer value rendered in format f.
func Int[T integer](n T, f Format) Value {
	return Value{n: int64(n), format: f}
}

// Symbol creates a value which renders as expr, bypassing any formatting.
func Symbol(expr string) Value {
	return Value{sym: expr, symbolic: true}
}

// Render returns the source text for v. Char values outside 0…255 fail with
// an overflow error, unknown formats with an invalid-format error.
func (v Value) Render() (string, error) {
	if v.symbolic {
		return v.sym, nil
	}
	switch v.format {
	case FormatDecimal:
		return strconv.FormatInt(v.n, 10), nil
	case FormatHex:
		if v.n < 0 {
			return "-0x" + strconv.FormatUint(uint64(-v.n), 16), nil
		}
		return "0x" + strconv.FormatInt(v.n, 16), nil
	case FormatBinary:
		return strconv.FormatInt(v.n, 2) + "b", nil
	case FormatPaddedBinary:
		return paddedBinary(v.n), nil
	case FormatChar:
		if v.n < 0 || v.n > 0xff {
			return "", errs.New(errs.KindOverflow, "asm.Value.Render",
				"value %d does not fit into a character", v.n)
		}
		return string(rune(v.n)), nil
	}
	return "", errs.New(errs.KindInvalidFormat, "asm.Value.Render", "invalid format %s", v.format)
}

// String renders v. Values which cannot be rendered show up as an error
// marker; directives never hold such values (see NewDirective).
func (v Value) String() string {
	s, err := v.Render()
	if err != nil {
		return "<error: " + err.Error() + ">"
	}
	return s
}

// paddedBinary zero-pads the binary digits of n to a multiple of 8.
func paddedBinary(n int64) string {
	sign := ""
	if n < 0 {
		sign, n = "-", -n
	}
	digits := strconv.FormatUint(uint64(n), 2)
	width := (len(digits) + 7) / 8 * 8
	return sign + strings.Repeat("0", width-len(digits)) + digits + "b"
}
