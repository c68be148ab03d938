package psf

import (
	"bytes"
	"io"

	"github.com/npillmayer/ostools/errs"
)

// Reading bytes from a font's binary representation

// binarySegm is a segment of byte data. PSF is little-endian throughout.
type binarySegm []byte

func (b binarySegm) Reader() io.Reader {
	return bytes.NewReader(b)
}

// view returns n bytes at the given offset.
// The byte segment returned is a sub-slice of b.
func (b binarySegm) view(op string, offset, n int) (binarySegm, error) {
	if offset < 0 || n < 0 || offset > len(b) || n > len(b)-offset {
		return nil, errs.At(errs.KindTruncatedFile, op, offset,
			"need %d bytes, have %d", n, max(0, len(b)-offset))
	}
	return b[offset : offset+n], nil
}

// u16 returns the little-endian uint16 in b at offset i.
func (b binarySegm) u16(op string, i int) (uint16, error) {
	buf, err := b.view(op, i, 2)
	if err != nil {
		return 0, err
	}
	return uint16(buf[0]) | uint16(buf[1])<<8, nil
}

// hasPrefix reports whether b starts with magic.
func (b binarySegm) hasPrefix(magic []byte) bool {
	return bytes.HasPrefix(b, magic)
}
