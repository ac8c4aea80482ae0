package output

import (
	"io"
	"strings"
)

// SafeTerminalWriter sanitizes all bytes written to it and starts every
// line with Prefix. It is used for messages that may quote text a
// process controls, like fatal errors naming a command line.
type SafeTerminalWriter struct {
	W      io.Writer
	Prefix string

	midLine bool
}

func (w *SafeTerminalWriter) Write(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	var b strings.Builder
	for _, line := range strings.SplitAfter(SanitizeTerminal(string(p)), "\n") {
		if line == "" {
			continue
		}
		if !w.midLine {
			b.WriteString(w.Prefix)
		}
		b.WriteString(line)
		w.midLine = !strings.HasSuffix(line, "\n")
	}
	if _, err := io.WriteString(w.W, b.String()); err != nil {
		return 0, err
	}
	return len(p), nil
}

func NewSafeTerminalWriter(w io.Writer, prefix string) io.Writer {
	return &SafeTerminalWriter{W: w, Prefix: prefix}
}
