package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/npillmayer/ostools/asm"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"github.com/pterm/pterm"
	"github.com/thatisuday/commando"
	"golang.org/x/term"
)

// tracer traces with key 'ostools'
func tracer() tracing.Trace {
	return tracing.Select("ostools")
}

var traceKeys = []string{"ostools", "ostools.asm", "ostools.gdt", "ostools.psf", "ostools.gdtload"}

func main() {
	initTracing()

	commando.
		SetExecutableName("os-tools").
		SetVersion("v0.1.0").
		SetDescription("Generate NASM assembly for boot code: GDT tables and PSF console fonts.")

	commando.
		Register("gdt").
		SetDescription("Assemble a Global Descriptor Table. Without a layout file, a flat 32-bit table with one code and one data segment is generated.").
		SetShortDescription("assemble a GDT").
		AddArgument("layout", "layout file (.yaml, .yml or .lua)", "").
		AddFlag("output,o", "output file for the assembly (default: stdout)", commando.String, "-").
		AddFlag("selectors,s", "append selector constants to the default table", commando.Bool, nil).
		AddFlag("verbose,V", "trace table construction", commando.Bool, nil).
		SetAction(runGDTCommand)

	commando.
		Register("font").
		SetDescription("Emit the glyphs of a PSF1 or PSF2 console font as byte literals.").
		SetShortDescription("PSF font to assembly").
		AddArgument("font", "PSF font file path", "").
		AddFlag("output,o", "output file for the assembly (default: stdout)", commando.String, "-").
		AddFlag("verbose,V", "trace font decoding", commando.Bool, nil).
		SetAction(runFontCommand)

	commando.
		Register("psf").
		SetDescription("Print the header fields and geometry of a PSF console font.").
		SetShortDescription("PSF font diagnostics").
		AddArgument("font", "PSF font file path", "").
		AddArgument("runes...", "optional characters to look up in the font", "").
		AddFlag("verbose,V", "trace font decoding", commando.Bool, nil).
		SetAction(runPSFCommand)

	commando.
		Register("sheet").
		SetDescription("Render all glyphs of a PSF console font, or a line of text, to a PNG image.").
		SetShortDescription("PSF font to image").
		AddArgument("font", "PSF font file path", "").
		AddFlag("output,o", "output PNG file", commando.String, "os-tools-sheet.png").
		AddFlag("columns,c", "glyphs per row", commando.Int, 16).
		AddFlag("text,t", "render this text instead of the glyph sheet", commando.String, "-").
		AddFlag("verbose,V", "trace rendering", commando.Bool, nil).
		SetAction(runSheetCommand)

	commando.Parse(nil)
}

// initTracing routes all trace keys to the Go log adapter, at level Error.
func initTracing() {
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	conf := testconfig.Conf{
		"tracing.adapter": "go",
	}
	for _, key := range traceKeys {
		conf["trace."+key] = "Error"
	}
	if err := trace2go.ConfigureRoot(conf, "trace", trace2go.ReplaceTracers(true)); err != nil {
		fatalf("cannot configure tracing: %v", err)
	}
	tracing.SetTraceSelector(trace2go.Selector())
}

func setVerbosity(flags map[string]commando.FlagValue) {
	if !mustFlagBool(flags["verbose"], "verbose") {
		return
	}
	for _, key := range traceKeys {
		tracing.Select(key).SetTraceLevel(tracing.LevelDebug)
	}
}

// writeAssembly writes doc to w. With styled set, labels are highlighted.
func writeAssembly(w io.Writer, doc *asm.Document, styled bool) error {
	if !styled {
		_, err := doc.WriteTo(w)
		if err == nil {
			_, err = io.WriteString(w, "\n")
		}
		return err
	}
	for _, line := range strings.Split(doc.String(), "\n") {
		if strings.HasSuffix(line, ":") {
			line = pterm.FgCyan.Sprint(line)
		} else if strings.Contains(line, " equ ") {
			line = pterm.FgYellow.Sprint(line)
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// emit writes doc to the file named by the output flag, or to stdout.
// Stdout output is styled only if it is a terminal.
func emit(doc *asm.Document, flags map[string]commando.FlagValue) {
	out := mustFlagString(flags["output"], "output")
	if out == "" || out == "-" {
		if err := writeAssembly(os.Stdout, doc, isTerminal(os.Stdout)); err != nil {
			fatalf("%v", err)
		}
		return
	}
	if err := doc.SaveFile(out); err != nil {
		fatalf("%v", err)
	}
	if isTerminal(os.Stdout) {
		pterm.Success.Printf("wrote %s\n", out)
	}
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

func mustFlagInt(flag commando.FlagValue, name string) int {
	n, err := flag.GetInt()
	if err != nil {
		fatalf("invalid --%s flag: %v", name, err)
	}
	return n
}

func mustFlagBool(flag commando.FlagValue, name string) bool {
	b, err := flag.GetBool()
	if err != nil {
		fatalf("invalid --%s flag: %v", name, err)
	}
	return b
}

func mustFlagString(flag commando.FlagValue, name string) string {
	s, err := flag.GetString()
	if err != nil {
		fatalf("invalid --%s flag: %v", name, err)
	}
	return strings.TrimSpace(s)
}

func fatalf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(os.Stderr, "os-tools: "+format+"\n", args...)
	os.Exit(1)
}
