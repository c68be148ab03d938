package main

import (
	"strings"

	"github.com/npillmayer/ostools"
	"github.com/npillmayer/ostools/gdt"
	"github.com/npillmayer/ostools/gdtload"
	"github.com/thatisuday/commando"
)

func runGDTCommand(args map[string]commando.ArgValue, flags map[string]commando.FlagValue) {
	setVerbosity(flags)
	table, err := buildTable(strings.TrimSpace(args["layout"].Value),
		mustFlagBool(flags["selectors"], "selectors"))
	if err != nil {
		fatalf("%v", err)
	}
	tracer().Infof("GDT has %d entries, %d bytes", len(table.Entries()), table.Size())
	emit(table.Document, flags)
}

// buildTable loads a layout file, or assembles the default flat table if
// layout is empty. Selector constants for the default table are optional;
// layouts request them themselves.
func buildTable(layout string, selectors bool) (*gdt.Table, error) {
	if layout != "" {
		return gdtload.LoadFile(layout)
	}
	table, err := ostools.DefaultFlatGDT()
	if err != nil {
		return nil, err
	}
	if selectors {
		if err := table.AddSelectorConstants(); err != nil {
			return nil, err
		}
	}
	return table, nil
}
