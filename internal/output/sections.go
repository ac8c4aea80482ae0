package output

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pranshuparmar/procdump/pkg/model"
)

func renderEnvironment(p Printer, pal palette, vars []model.EnvVar) {
	if len(vars) == 0 {
		renderNone(p, pal, "environment variables")
		return
	}
	for _, v := range vars {
		p.Printf("  %s%s%s=%s\n", pal.key, cell(SanitizeCell(v.Name)), pal.reset, cell(SanitizeCell(v.Value)))
	}
}

func renderSockets(p Printer, pal palette, socks []model.Socket) {
	if len(socks) == 0 {
		renderNone(p, pal, "sockets")
		return
	}
	t := newTable(pal, rightCol("FD"), col("PROTO"), col("LOCAL"), col("REMOTE"), col("STATE"), rightCol("TX"), rightCol("RX"), rightCol("INODE"))
	for _, s := range socks {
		proto := s.Protocol
		if s.Type != "" {
			proto += "/" + s.Type
		}
		tx, rx := "", ""
		if s.Protocol != "unix" && s.Protocol != "unknown" {
			tx, rx = strconv.FormatUint(s.TxQueue, 10), strconv.FormatUint(s.RxQueue, 10)
		}
		t.addRow(strconv.Itoa(s.FD), proto, s.LocalAddr, s.RemoteAddr, s.State, tx, rx, strconv.FormatUint(s.Inode, 10))
	}
	t.render(p)
}

func renderMaps(p Printer, pal palette, regions []model.MemoryRegion) {
	if len(regions) == 0 {
		renderNone(p, pal, "mappings")
		return
	}
	detail := false
	for _, r := range regions {
		if r.Detail != nil {
			detail = true
			break
		}
	}

	cols := []column{col("ADDRESS"), col("PERMS"), rightCol("OFFSET"), col("DEV"), rightCol("INODE"), rightCol("SIZE")}
	if detail {
		cols = append(cols, rightCol("RSS"), rightCol("PSS"), rightCol("DIRTY"), rightCol("SWAP"))
	}
	cols = append(cols, col("PATH"))
	t := newTable(pal, cols...)

	for _, r := range regions {
		row := []string{
			fmt.Sprintf("%012x-%012x", r.Start, r.End),
			r.Perms,
			fmt.Sprintf("%x", r.Offset),
			r.Device,
			strconv.FormatUint(r.Inode, 10),
			FormatBytes(r.Size()),
		}
		if detail {
			if d := r.Detail; d != nil {
				row = append(row, FormatBytes(d.Rss), FormatBytes(d.Pss),
					FormatBytes(d.SharedDirty+d.PrivateDirty), FormatBytes(d.Swap))
			} else {
				row = append(row, "", "", "", "")
			}
		}
		row = append(row, r.Pathname)
		t.addRow(row...)
	}
	t.render(p)
}

func renderMemory(p Printer, pal palette, m model.MemoryUsage) {
	pairs := [][2]string{
		{"Resident", FormatBytes(m.Resident)},
		{"Virtual", FormatBytes(m.Virtual)},
		{"Shared", FormatBytes(m.Shared)},
		{"Peak virtual", FormatBytes(m.Peak)},
		{"Peak resident", FormatBytes(m.HighWater)},
		{"Data", FormatBytes(m.Data)},
		{"Stack", FormatBytes(m.Stack)},
		{"Swap", FormatBytes(m.Swap)},
	}
	if r := m.Rollup; r != nil {
		pairs = append(pairs,
			[2]string{"Proportional", FormatBytes(r.Pss)},
			[2]string{"Shared clean", FormatBytes(r.SharedClean)},
			[2]string{"Shared dirty", FormatBytes(r.SharedDirty)},
			[2]string{"Private clean", FormatBytes(r.PrivateClean)},
			[2]string{"Private dirty", FormatBytes(r.PrivateDirty)},
			[2]string{"Referenced", FormatBytes(r.Referenced)},
			[2]string{"Anonymous", FormatBytes(r.Anonymous)},
		)
	}
	renderPairs(p, pal, pairs)
}

func renderFiles(p Printer, pal palette, files []model.OpenFile) {
	if len(files) == 0 {
		renderNone(p, pal, "open files")
		return
	}
	t := newTable(pal, rightCol("FD"), col("MODE"), col("KIND"), rightCol("POS"), col("TARGET"), col("INFO"))
	for _, f := range files {
		pos := ""
		if f.Kind == model.FileKindFile {
			pos = strconv.FormatInt(f.Pos, 10)
		}
		t.addRow(strconv.Itoa(f.FD), f.Mode, string(f.Kind), pos, f.Target, fileInfo(f))
	}
	t.render(p)
}

func fileInfo(f model.OpenFile) string {
	var info []string
	if f.Lock != "" {
		info = append(info, "lock: "+f.Lock)
	}
	if peer := f.Peer; peer != nil {
		role := "reader"
		if peer.Writer {
			role = "writer"
		}
		info = append(info, fmt.Sprintf("%s: %s (pid %d)", role, peer.Command, peer.PID))
	}
	return strings.Join(info, ", ")
}

func renderLimits(p Printer, pal palette, limits []model.Limit) {
	t := newTable(pal, col("RESOURCE"), rightCol("SOFT"), rightCol("HARD"), col("UNITS"))
	for _, l := range limits {
		t.addRow(l.Name, FormatLimit(l.Soft, l.Unit), FormatLimit(l.Hard, l.Unit), l.Unit)
	}
	t.render(p)
}

func renderCgroups(p Printer, pal palette, groups []model.CgroupEntry) {
	if len(groups) == 0 {
		renderNone(p, pal, "control groups")
		return
	}
	for _, g := range groups {
		where := fmt.Sprintf("v%d", g.Version)
		if g.Mountpoint != "" {
			where += ", " + g.Mountpoint
		}
		p.Printf("  %s%d:%s:%s%s (%s)\n", pal.key, g.Hierarchy, strings.Join(g.Controllers, ","), g.Path, pal.reset, where)
		for _, d := range g.Details {
			p.Printf("      %s: %s\n", d.Key, d.Value)
		}
	}
}

func renderIO(p Printer, pal palette, io model.IOStats) {
	pairs := [][2]string{
		{"Read", FormatBytes(io.RChar)},
		{"Written", FormatBytes(io.WChar)},
		{"Read syscalls", strconv.FormatUint(io.SyscR, 10)},
		{"Write syscalls", strconv.FormatUint(io.SyscW, 10)},
		{"Storage read", FormatBytes(io.ReadBytes)},
		{"Storage written", FormatBytes(io.WriteBytes)},
		{"Cancelled writes", strconv.FormatInt(io.CancelledWriteBytes, 10) + " B"},
	}
	if io.ReadRate > 0 || io.WriteRate > 0 {
		pairs = append(pairs,
			[2]string{"Read rate", FormatRate(io.ReadRate)},
			[2]string{"Write rate", FormatRate(io.WriteRate)},
		)
	}
	renderPairs(p, pal, pairs)
}

func renderTasks(p Printer, pal palette, tasks []model.Task) {
	sampled := false
	for _, t := range tasks {
		if t.CPUPercent > 0 {
			sampled = true
			break
		}
	}
	cols := []column{rightCol("TID"), col("STATE"), col("NAME"), rightCol("USER"), rightCol("SYSTEM")}
	if sampled {
		cols = append(cols, rightCol("CPU"))
	}
	t := newTable(pal, cols...)
	for _, task := range tasks {
		row := []string{strconv.Itoa(task.TID), task.State, task.Name, FormatDuration(task.UTime), FormatDuration(task.STime)}
		if sampled {
			row = append(row, formatPercent(task.CPUPercent))
		}
		t.addRow(row...)
	}
	t.render(p)
}
