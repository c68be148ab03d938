package asm

import (
	"strings"

	"github.com/npillmayer/ostools/errs"
)

// Label is a named block of items. It renders as
//
//	name:
//	    item 1
//	    item 2
//
// followed by a newline.
type Label struct {
	name string
	body Store
	err  error // first failed Add, reported by Err
}

// NewLabel creates an empty label. The name must not be empty.
func NewLabel(name string) (*Label, error) {
	if name == "" {
		return nil, errs.New(errs.KindInvalidFormat, "asm.NewLabel", "label name must not be empty")
	}
	return &Label{name: name}, nil
}

// MustLabel is like NewLabel, but panics on an empty name.
// Intended for constant names.
func MustLabel(name string) *Label {
	l, err := NewLabel(name)
	if err != nil {
		panic(err)
	}
	return l
}

// Name returns the label's name.
func (l *Label) Name() string {
	return l.name
}

// Add appends items to the label's body and returns the label for chaining.
// The first failure is kept and reported by Err; later items are still
// considered.
func (l *Label) Add(items ...Item) *Label {
	for _, item := range items {
		if err := l.body.Add(item); err != nil && l.err == nil {
			l.err = err
		}
	}
	return l
}

// Err returns the first error encountered by Add, if any.
func (l *Label) Err() error {
	return l.err
}

// Items returns the body in emission order.
func (l *Label) Items() []Item {
	return l.body.Items()
}

// Len returns the number of body items.
func (l *Label) Len() int {
	return l.body.Len()
}

// Clear empties the body and forgets a previous Add error.
func (l *Label) Clear() {
	l.body.Clear()
	l.err = nil
}

func (l *Label) String() string {
	sb := strings.Builder{}
	sb.WriteString(l.name)
	sb.WriteString(":")
	for _, line := range l.body.lines() {
		sb.WriteString("\n")
		sb.WriteString(Indent)
		sb.WriteString(line)
	}
	sb.WriteString("\n")
	return sb.String()
}
