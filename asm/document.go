package asm

import (
	"io"
	"os"
	"strings"

	"github.com/npillmayer/ostools/errs"
)

// Document is a complete assembly source: a sequence of top-level items
// (labels and directives) with unique label names.
//
// The zero value is not usable; create documents with NewDocument.
type Document struct {
	store  Store
	labels map[string]struct{}
}

// NewDocument creates an empty document.
func NewDocument() *Document {
	return &Document{labels: make(map[string]struct{})}
}

// LabelExists reports whether a label called name has been added.
func (d *Document) LabelExists(name string) bool {
	_, ok := d.labels[name]
	return ok
}

// AddLabel appends l. It fails if a label of the same name is already
// present, or if l recorded an error while its body was built. A failed
// insertion leaves the document untouched.
func (d *Document) AddLabel(l *Label) error {
	if l == nil {
		return errs.New(errs.KindCapability, "asm.Document.AddLabel", "nil label")
	}
	if err := l.Err(); err != nil {
		return err
	}
	if d.LabelExists(l.name) {
		return errs.New(errs.KindDuplicateLabel, "asm.Document.AddLabel",
			"label %q has to be unique", l.name)
	}
	if err := d.store.Add(l); err != nil {
		return err
	}
	d.labels[l.name] = struct{}{}
	tracer().Debugf("added label %s with %d items", l.name, l.Len())
	return nil
}

// Add appends a top-level item. Labels are routed through AddLabel to keep
// label names unique.
func (d *Document) Add(item Item) error {
	if l, ok := item.(*Label); ok {
		return d.AddLabel(l)
	}
	return d.store.Add(item)
}

// Clear removes every item and forgets all label names. Emitters call it
// before running a second emission pass.
func (d *Document) Clear() {
	d.store.Clear()
	clear(d.labels)
}

// Items returns the top-level items in emission order.
func (d *Document) Items() []Item {
	return d.store.Items()
}

// Len returns the number of top-level items.
func (d *Document) Len() int {
	return d.store.Len()
}

// String returns the assembly source: all top-level items joined by newlines.
func (d *Document) String() string {
	return strings.Join(d.store.lines(), "\n")
}

// WriteTo writes the assembly source to w. It implements io.WriterTo.
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, d.String())
	return int64(n), errs.Wrap(errs.KindIO, "asm.Document.WriteTo", err)
}

// Print dumps the assembly source to stdout, followed by a newline.
func (d *Document) Print() error {
	_, err := io.WriteString(os.Stdout, d.String()+"\n")
	return errs.Wrap(errs.KindIO, "asm.Document.Print", err)
}

// SaveFile writes the assembly source to path, replacing any existing content.
func (d *Document) SaveFile(path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return errs.Wrap(errs.KindIO, "asm.Document.SaveFile", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = errs.Wrap(errs.KindIO, "asm.Document.SaveFile", cerr)
		}
	}()
	if _, err = d.WriteTo(f); err != nil {
		return err
	}
	tracer().Infof("assembly written to %s", path)
	return nil
}
