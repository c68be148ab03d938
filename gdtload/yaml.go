package gdtload

import (
	"bytes"

	"github.com/npillmayer/ostools/errs"
	"github.com/npillmayer/ostools/gdt"
	"gopkg.in/yaml.v3"
)

// ParseYAML decodes a YAML layout. Unknown keys are rejected.
func ParseYAML(data []byte) (*Layout, error) {
	l := &Layout{}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(l); err != nil {
		return nil, errs.Wrap(errs.KindInvalidFormat, "gdtload.ParseYAML", err)
	}
	return l, nil
}

// FromYAML builds the table described by a YAML layout.
func FromYAML(data []byte) (*gdt.Table, error) {
	l, err := ParseYAML(data)
	if err != nil {
		return nil, err
	}
	return Build(l)
}
