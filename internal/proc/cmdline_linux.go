//go:build linux

package proc

import (
	"strings"

	"github.com/prometheus/procfs"
)

// cmdline returns the command line of p with arguments joined by
// spaces. Kernel threads have an empty command line and are shown as
// [comm] the way ps does.
func cmdline(p procfs.Proc, comm string) string {
	args, err := p.CmdLine()
	if err != nil {
		return ""
	}
	line := strings.TrimSpace(strings.Join(args, " "))
	if line == "" && comm != "" {
		return "[" + comm + "]"
	}
	return line
}
