package output

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/pranshuparmar/procdump/internal/proc"
	"github.com/pranshuparmar/procdump/internal/report"
	"github.com/pranshuparmar/procdump/pkg/model"
)

// RenderReport writes every collected section of r in report order.
// Sections that were not requested are left out; sections that failed
// show the reason instead of their content.
func RenderReport(w io.Writer, r *model.Report, colorEnabled bool) {
	p := NewPrinter(w)
	pal := newPalette(colorEnabled)

	renderHeader(p, pal, r)
	section(p, pal, "Environment", r.Environment, renderEnvironment)
	section(p, pal, "Sockets", r.Sockets, renderSockets)
	section(p, pal, "Memory Maps", r.Maps, renderMaps)
	section(p, pal, "Memory Usage", r.Memory, renderMemory)
	section(p, pal, "Open Files", r.Files, renderFiles)
	section(p, pal, "Limits", r.Limits, renderLimits)
	section(p, pal, "Cgroups", r.Cgroups, renderCgroups)
	section(p, pal, "IO", r.IO, renderIO)
	section(p, pal, "Tasks", r.Tasks, renderTasks)
	section(p, pal, "Process Tree", r.Tree, renderTree)
}

// RenderSection writes the single section of r named by one of the
// report section names. Unknown names write nothing.
func RenderSection(w io.Writer, r *model.Report, name string, colorEnabled bool) {
	p := NewPrinter(w)
	pal := newPalette(colorEnabled)

	switch name {
	case report.SectionEnv:
		section(p, pal, "Environment", r.Environment, renderEnvironment)
	case report.SectionNet:
		section(p, pal, "Sockets", r.Sockets, renderSockets)
	case report.SectionMaps:
		section(p, pal, "Memory Maps", r.Maps, renderMaps)
	case report.SectionMem:
		section(p, pal, "Memory Usage", r.Memory, renderMemory)
	case report.SectionFiles:
		section(p, pal, "Open Files", r.Files, renderFiles)
	case report.SectionLimits:
		section(p, pal, "Limits", r.Limits, renderLimits)
	case report.SectionCgroups:
		section(p, pal, "Cgroups", r.Cgroups, renderCgroups)
	case report.SectionIO:
		section(p, pal, "IO", r.IO, renderIO)
	case report.SectionTasks:
		section(p, pal, "Tasks", r.Tasks, renderTasks)
	case report.SectionTree:
		section(p, pal, "Process Tree", r.Tree, renderTree)
	}
}

func section[T any](p Printer, pal palette, title string, s model.Section[T], body func(Printer, palette, T)) {
	if s.Skipped {
		return
	}
	if n, ok := count(s.Value); ok && s.Err == nil {
		title = fmt.Sprintf("%s (%d)", title, n)
	}
	p.Printf("\n%s%s%s\n", pal.title, title, pal.reset)
	if s.Err != nil {
		renderUnavailable(p, pal, s.Err)
		return
	}
	body(p, pal, s.Value)
}

func count(v any) (int, bool) {
	switch v := v.(type) {
	case []model.EnvVar:
		return len(v), true
	case []model.Socket:
		return len(v), true
	case []model.MemoryRegion:
		return len(v), true
	case []model.OpenFile:
		return len(v), true
	case []model.Task:
		return len(v), true
	}
	return 0, false
}

func renderUnavailable(p Printer, pal palette, err error) {
	p.Printf("  %sunavailable: %s%s\n", pal.warn, proc.Reason(err), pal.reset)
}

func renderNone(p Printer, pal palette, what string) {
	p.Printf("  %s(no %s)%s\n", pal.dim, what, pal.reset)
}

// renderPairs prints "key : value" lines with the keys aligned.
func renderPairs(p Printer, pal palette, pairs [][2]string) {
	width := 0
	for _, kv := range pairs {
		if len(kv[0]) > width {
			width = len(kv[0])
		}
	}
	for _, kv := range pairs {
		value := kv[1]
		if value == "" {
			value = "-"
		}
		p.Printf("  %s%-*s%s : %s\n", pal.key, width, kv[0], pal.reset, cell(SanitizeCell(value)))
	}
}

func renderHeader(p Printer, pal palette, r *model.Report) {
	h := r.Process
	if r.HeaderErr != nil {
		p.Printf("%sProcess %d%s\n", pal.title, h.PID, pal.reset)
		renderUnavailable(p, pal, r.HeaderErr)
		return
	}
	p.Printf("%sProcess %d%s (%s)\n", pal.title, h.PID, pal.reset, h.Command)

	user := h.User
	if h.UID >= 0 {
		user = fmt.Sprintf("%s (uid %d)", h.User, h.UID)
	}
	started := "unknown"
	if !h.StartedAt.IsZero() {
		started = h.StartedAt.Local().Format("2006-01-02 15:04:05")
		if up := uptime(h, r.CollectedAt); up > 0 {
			started += " (up " + FormatDuration(up) + ")"
		}
	}
	cpu := fmt.Sprintf("%s user, %s system", FormatDuration(h.UTime), FormatDuration(h.STime))
	if r.CPUPercent > 0 {
		cpu += ", " + formatPercent(r.CPUPercent)
	}

	launched := ""
	if l := r.Launcher; l != nil {
		launched = fmt.Sprintf("%s (%s)", l.Name, l.Kind)
	}

	renderPairs(p, pal, [][2]string{
		{"Command", h.Cmdline},
		{"Executable", h.Exe},
		{"Working dir", h.Cwd},
		{"User", user},
		{"State", h.State},
		{"Parent", strconv.Itoa(h.PPID)},
		{"Launched by", launched},
		{"Group / session", fmt.Sprintf("%d / %d", h.PGRP, h.Session)},
		{"Started", started},
		{"Threads", strconv.Itoa(h.Threads)},
		{"Nice", strconv.Itoa(h.Nice)},
		{"CPU time", cpu},
		{"Memory", fmt.Sprintf("%s virtual, %s resident, %s shared",
			FormatBytes(h.VirtualBytes), FormatBytes(h.ResidentBytes), FormatBytes(h.SharedBytes))},
	})
}

func uptime(p model.Process, now time.Time) time.Duration {
	if now.IsZero() {
		now = time.Now()
	}
	return proc.Uptime(p, now)
}
