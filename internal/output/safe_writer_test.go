package output

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSafeTerminalWriter(t *testing.T) {
	var buf bytes.Buffer
	w := NewSafeTerminalWriter(&buf, "procdump: ")

	fmt.Fprintf(w, "bad \x1b[2J input\n")
	fmt.Fprint(w, "first half, ")
	fmt.Fprint(w, "second half\nnext line\n")

	want := "procdump: bad \\\\x1b[2J input\n" +
		"procdump: first half, second half\n" +
		"procdump: next line\n"
	assert.Equal(t, want, buf.String())
}
