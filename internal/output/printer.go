package output

import (
	"fmt"
	"io"
)

// ansiString is a terminal escape sequence. It is the only string type
// the Printer writes without sanitizing.
type ansiString string

// palette holds the colours used by the renderers. Every field is
// empty when colour is disabled.
type palette struct {
	reset   ansiString
	title   ansiString
	key     ansiString
	focus   ansiString
	warn    ansiString
	dim     ansiString
	connect ansiString
}

func newPalette(enabled bool) palette {
	if !enabled {
		return palette{}
	}
	return palette{
		reset:   "\033[0m",
		title:   "\033[1;34m",
		key:     "\033[34m",
		focus:   "\033[32m",
		warn:    "\033[31m",
		dim:     "\033[2m",
		connect: "\033[35m",
	}
}

// Printer writes terminal-safe output to an io.Writer
// sanitizing any string-like arguments (string, []byte, error, fmt.Stringer)
type Printer struct {
	w io.Writer
}

func NewPrinter(w io.Writer) Printer {
	return Printer{w: w}
}

func (p Printer) Printf(format string, args ...any) {
	fmt.Fprintf(p.w, format, sanitizePrintArgs(args)...)
}

func (p Printer) Print(args ...any) {
	fmt.Fprint(p.w, sanitizePrintArgs(args)...)
}

func (p Printer) Println(args ...any) {
	fmt.Fprintln(p.w, sanitizePrintArgs(args)...)
}

func sanitizePrintArgs(args []any) []any {
	if len(args) == 0 {
		return nil
	}
	out := make([]any, len(args))
	for i, a := range args {
		switch v := a.(type) {
		case ansiString: // our own ansiString type is allowed to render as-is
			out[i] = string(v)
		case cell: // already sanitized and coloured by a table
			out[i] = string(v)
		case string:
			out[i] = SanitizeTerminal(v)
		case []byte:
			out[i] = SanitizeTerminal(string(v))
		case error:
			out[i] = SanitizeTerminal(v.Error())
		case fmt.Stringer:
			out[i] = SanitizeTerminal(v.String())
		default:
			out[i] = a
		}
	}
	return out
}
