package output

import (
	"io"

	"github.com/pranshuparmar/procdump/internal/proc"
	"github.com/pranshuparmar/procdump/pkg/model"
)

// RenderShort prints the ancestry of the process and a summary of its
// state and resource usage on a single line.
func RenderShort(w io.Writer, r *model.Report, colorEnabled bool) {
	p := NewPrinter(w)
	pal := newPalette(colorEnabled)

	chain := r.Ancestry
	if len(chain) == 0 {
		h := r.Process
		chain = []model.ProcessSummary{{PID: h.PID, PPID: h.PPID, User: h.User, Command: h.Command}}
	}
	for i, ps := range chain {
		if i > 0 {
			p.Printf("%s → %s", pal.connect, pal.reset)
		}
		name := ansiString("")
		if i == len(chain)-1 {
			name = pal.focus
		}
		p.Printf("%s%s%s (%spid %d%s)", name, ps.Command, pal.reset, pal.dim, ps.PID, pal.reset)
	}

	h := r.Process
	if r.HeaderErr != nil {
		p.Printf("  %s[unavailable: %s]%s\n", pal.dim, proc.Reason(r.HeaderErr), pal.reset)
		return
	}
	p.Printf("  %s[%s, %d threads, %s resident, cpu %s", pal.dim,
		h.State, h.Threads, FormatBytes(h.ResidentBytes), FormatDuration(h.CPUTime()))
	if r.CPUPercent > 0 {
		p.Printf(" (%s)", formatPercent(r.CPUPercent))
	}
	if up := uptime(h, r.CollectedAt); up > 0 && !h.StartedAt.IsZero() {
		p.Printf(", up %s", FormatDuration(up))
	}
	p.Printf("]%s\n", pal.reset)
}
