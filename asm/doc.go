/*
Package asm emits x86 assembly source text from structured items.

The building blocks are deliberately small:

▪︎ an Item is anything which renders itself as a line of text (fmt.Stringer);

▪︎ a Store is an ordered sequence of items, emitted in insertion order;

▪︎ a Label is a named Store, rendered as a label line followed by its
indented body;

▪︎ a Document is a Store of top-level items which keeps label names unique
and writes the whole source to stdout or to a file.

Data items are typed values (decimal, hex, binary, zero-padded binary,
character, or a verbatim symbolic expression) combined into `db`, `dw` and
`dd` directives. The output targets NASM syntax; it is not validated
against an assembler.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package asm

import "github.com/npillmayer/schuko/tracing"

// tracer writes to trace with key 'ostools.asm'
func tracer() tracing.Trace {
	return tracing.Select("ostools.asm")
}

// Indent is prepended to every line of a label's body.
const Indent = "    "
