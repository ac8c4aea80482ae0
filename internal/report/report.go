// Package report gathers every category of process information into a
// single model.Report.
package report

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/pranshuparmar/procdump/internal/launcher"
	"github.com/pranshuparmar/procdump/internal/proc"
	"github.com/pranshuparmar/procdump/pkg/model"
)

// Section names accepted by --sections.
const (
	SectionEnv     = "env"
	SectionNet     = "net"
	SectionMaps    = "maps"
	SectionMem     = "mem"
	SectionFiles   = "files"
	SectionLimits  = "limits"
	SectionCgroups = "cgroups"
	SectionIO      = "io"
	SectionTasks   = "tasks"
	SectionTree    = "tree"
)

// AllSections lists every section in report order.
var AllSections = []string{
	SectionEnv, SectionNet, SectionMaps, SectionMem, SectionFiles,
	SectionLimits, SectionCgroups, SectionIO, SectionTasks, SectionTree,
}

// DefaultSections is everything except the process tree, which scans
// every process on the system.
var DefaultSections = AllSections[:len(AllSections)-1]

// ParseSections splits a comma separated list of section names.
func ParseSections(list string) (map[string]bool, error) {
	known := make(map[string]bool, len(AllSections))
	for _, s := range AllSections {
		known[s] = true
	}
	out := make(map[string]bool)
	for _, name := range strings.Split(list, ",") {
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" {
			continue
		}
		if !known[name] {
			return nil, fmt.Errorf("%w: unknown section %q (want one of %s)",
				proc.ErrInvalidArgument, name, strings.Join(AllSections, ", "))
		}
		out[name] = true
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: no sections selected", proc.ErrInvalidArgument)
	}
	return out, nil
}

// Options selects what Collect reads.
type Options struct {
	// Sections to collect. Nil means DefaultSections.
	Sections map[string]bool
	// MapsDetail attaches smaps counters to every mapping.
	MapsDetail bool
	// TreeAll shows every process in the tree instead of only the
	// ancestors and descendants of the target.
	TreeAll bool
}

func (o Options) wants(section string) bool {
	if o.Sections == nil {
		for _, s := range DefaultSections {
			if s == section {
				return true
			}
		}
		return false
	}
	return o.Sections[section]
}

// Source is what Collect reads process information from.
type Source interface {
	Process(pid int) (model.Process, error)
	Ancestry(pid int) ([]model.ProcessSummary, error)
	Environment(pid int) ([]model.EnvVar, error)
	Sockets(pid int) ([]model.Socket, error)
	MemoryMaps(pid int, detail bool) ([]model.MemoryRegion, error)
	MemoryUsage(pid int) (model.MemoryUsage, error)
	OpenFiles(pid int) ([]model.OpenFile, error)
	Limits(ctx context.Context, pid int) ([]model.Limit, error)
	Cgroups(pid int) ([]model.CgroupEntry, error)
	IO(pid int) (model.IOStats, error)
	Tasks(pid int) ([]model.Task, error)
	Processes() ([]model.ProcessSummary, error)
}

// Collect reads the header of pid and then every requested section in
// report order. Only ErrProcessNotFound is returned; any other failure
// is stored in the report and the remaining sections are still read.
func Collect(ctx context.Context, src Source, pid int, opts Options) (*model.Report, error) {
	header, err := src.Process(pid)
	if errors.Is(err, proc.ErrProcessNotFound) {
		return nil, err
	}
	log := zap.S().With("pid", pid)
	r := &model.Report{Process: header, CollectedAt: time.Now()}
	if err != nil {
		log.Debugw("header unavailable", "error", err)
		r.Process = model.Process{PID: pid, UID: -1, User: "unknown"}
		r.HeaderErr = err
	}

	if chain, err := src.Ancestry(pid); err == nil {
		r.Ancestry = chain
		if n := len(chain); n > 0 && chain[n-1].PID == pid {
			r.Launcher = launcher.Detect(chain[:n-1])
		}
	} else {
		log.Debugw("reading ancestry", "error", err)
	}

	r.Environment = collect(ctx, log, opts, SectionEnv, func() ([]model.EnvVar, error) {
		return src.Environment(pid)
	})
	r.Sockets = collect(ctx, log, opts, SectionNet, func() ([]model.Socket, error) {
		return src.Sockets(pid)
	})
	r.Maps = collect(ctx, log, opts, SectionMaps, func() ([]model.MemoryRegion, error) {
		return src.MemoryMaps(pid, opts.MapsDetail)
	})
	r.Memory = collect(ctx, log, opts, SectionMem, func() (model.MemoryUsage, error) {
		return src.MemoryUsage(pid)
	})
	r.Files = collect(ctx, log, opts, SectionFiles, func() ([]model.OpenFile, error) {
		return src.OpenFiles(pid)
	})
	r.Limits = collect(ctx, log, opts, SectionLimits, func() ([]model.Limit, error) {
		return src.Limits(ctx, pid)
	})
	r.Cgroups = collect(ctx, log, opts, SectionCgroups, func() ([]model.CgroupEntry, error) {
		return src.Cgroups(pid)
	})
	r.IO = collect(ctx, log, opts, SectionIO, func() (model.IOStats, error) {
		return src.IO(pid)
	})
	r.Tasks = collect(ctx, log, opts, SectionTasks, func() ([]model.Task, error) {
		return src.Tasks(pid)
	})
	r.Tree = collect(ctx, log, opts, SectionTree, func() ([]model.TreeEntry, error) {
		procs, err := src.Processes()
		if err != nil {
			return nil, err
		}
		return proc.BuildTree(procs, pid, !opts.TreeAll), nil
	})
	return r, nil
}

func collect[T any](ctx context.Context, log *zap.SugaredLogger, opts Options, name string, read func() (T, error)) model.Section[T] {
	if !opts.wants(name) {
		return model.Section[T]{Skipped: true}
	}
	if err := ctx.Err(); err != nil {
		return model.Section[T]{Err: err}
	}
	v, err := read()
	if err != nil {
		log.Debugw("section unavailable", "section", name, "error", err,
			"gone", errors.Is(err, proc.ErrProcessNotFound))
		return model.Section[T]{Err: err}
	}
	return model.Section[T]{Value: v}
}

// Rates fills the values of cur that are derived from an earlier report
// of the same process: CPU %, per-thread CPU % and I/O rates.
func Rates(prev, cur *model.Report) {
	if prev == nil || cur == nil || prev.Process.PID != cur.Process.PID {
		return
	}
	elapsed := cur.CollectedAt.Sub(prev.CollectedAt)
	if prev.HeaderErr == nil && cur.HeaderErr == nil {
		cur.CPUPercent = proc.CPUPercent(prev.Process.CPUTime(), cur.Process.CPUTime(), elapsed)
	}
	if prev.Tasks.OK() && cur.Tasks.OK() {
		cur.Tasks.Value = proc.TaskCPU(prev.Tasks.Value, cur.Tasks.Value, elapsed)
	}
	if prev.IO.OK() && cur.IO.OK() {
		cur.IO.Value = proc.IORates(prev.IO.Value, cur.IO.Value, elapsed)
	}
}
