package output

import (
	"github.com/pranshuparmar/procdump/pkg/model"
)

// renderTree prints a flattened process tree. The process the report
// is about is highlighted.
func renderTree(p Printer, pal palette, entries []model.TreeEntry) {
	if len(entries) == 0 {
		renderNone(p, pal, "processes")
		return
	}
	for _, e := range entries {
		name := ansiString("")
		if e.Focus {
			name = pal.focus
		}
		user := ""
		if e.User != "" {
			user = " " + e.User
		}
		p.Printf("  %s%s%s%s%s%s (%spid %d%s)%s\n",
			pal.connect, e.Prefix, pal.reset,
			name, e.Command, pal.reset,
			pal.dim, e.PID, pal.reset, user)
	}
}
