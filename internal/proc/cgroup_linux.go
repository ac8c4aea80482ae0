//go:build linux

package proc

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/containerd/cgroups/v3"
	"github.com/containerd/cgroups/v3/cgroup2"
	"github.com/prometheus/procfs"
	"go.uber.org/zap"

	"github.com/pranshuparmar/procdump/pkg/model"
)

const unifiedMountpoint = "/sys/fs/cgroup"

// Cgroups returns the control groups pid belongs to, ordered by
// hierarchy. Each entry is resolved to the mount of its hierarchy as
// seen by pid, and a few accounting values are read from there.
func (s *Source) Cgroups(pid int) ([]model.CgroupEntry, error) {
	p, err := s.proc(pid, "cgroup")
	if err != nil {
		return nil, err
	}
	groups, err := p.Cgroups()
	if err != nil {
		return nil, s.classify(pid, "cgroup", err)
	}
	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].HierarchyID < groups[j].HierarchyID
	})

	v1, unified := s.cgroupMounts(p)

	entries := make([]model.CgroupEntry, 0, len(groups))
	for _, g := range groups {
		e := model.CgroupEntry{
			Hierarchy:   g.HierarchyID,
			Controllers: g.Controllers,
			Path:        g.Path,
			Version:     1,
		}
		if g.HierarchyID == 0 {
			e.Version = 2
			e.Mountpoint = unified
			if e.Mountpoint != "" {
				e.Details = s.cgroup2Details(e.Mountpoint, g.Path)
			}
		} else if mp, ok := v1[controllerKey(g.Controllers)]; ok {
			e.Mountpoint = mp
			e.Details = s.cgroup1Details(mp, g.Path, g.Controllers)
		}
		entries = append(entries, e)
	}
	return entries, nil
}

func controllerKey(controllers []string) string {
	c := append([]string(nil), controllers...)
	sort.Strings(c)
	return strings.Join(c, ",")
}

// cgroupMounts maps v1 controller sets to their mountpoints and finds
// the unified hierarchy, both from the mount table of p.
func (s *Source) cgroupMounts(p procfs.Proc) (map[string]string, string) {
	v1 := make(map[string]string)
	unified := ""

	enabled := make(map[string]bool)
	if summary, err := s.fs.CgroupSummarys(); err == nil {
		for _, c := range summary {
			if c.Enabled == 1 {
				enabled[c.SubsysName] = true
			}
		}
	} else {
		zap.S().Debugw("reading /proc/cgroups", "error", err)
	}

	mounts, err := p.MountInfo()
	if err != nil {
		zap.S().Debugw("reading mountinfo", "pid", p.PID, "error", err)
	}
	for _, m := range mounts {
		switch m.FSType {
		case "cgroup2":
			if unified == "" {
				unified = m.MountPoint
			}
		case "cgroup":
			var controllers []string
			for opt, val := range m.SuperOptions {
				switch {
				case enabled[opt]:
					controllers = append(controllers, opt)
				case opt == "name" && val != "":
					controllers = append(controllers, "name="+val)
				}
			}
			if len(controllers) > 0 {
				v1[controllerKey(controllers)] = m.MountPoint
			}
		}
	}

	if unified == "" && cgroups.Mode() == cgroups.Unified {
		unified = unifiedMountpoint
	}
	return v1, unified
}

func (s *Source) hostPath(elem ...string) string {
	return filepath.Join(append([]string{s.hostRoot}, elem...)...)
}

func readTrimmed(path string) (string, bool) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", false
	}
	return strings.TrimSpace(string(b)), true
}

func (s *Source) cgroup1Details(mountpoint, group string, controllers []string) []model.KeyValue {
	dir := s.hostPath(mountpoint, group)
	has := make(map[string]bool, len(controllers))
	for _, c := range controllers {
		has[c] = true
	}

	var details []model.KeyValue
	add := func(key, file string) {
		if v, ok := readTrimmed(filepath.Join(dir, file)); ok {
			details = append(details, model.KeyValue{Key: key, Value: v})
		}
	}
	if has["pids"] {
		cur, ok1 := readTrimmed(filepath.Join(dir, "pids.current"))
		limit, ok2 := readTrimmed(filepath.Join(dir, "pids.max"))
		if ok1 && ok2 {
			details = append(details, model.KeyValue{Key: "pids", Value: cur + " of " + limit})
		}
	}
	if has["freezer"] {
		add("state", "freezer.state")
	}
	if has["memory"] {
		add("memory usage", "memory.usage_in_bytes")
		add("memory limit", "memory.limit_in_bytes")
		add("kernel usage", "memory.kmem.usage_in_bytes")
		add("kernel limit", "memory.kmem.limit_in_bytes")
	}
	if has["net_cls"] {
		add("class id", "net_cls.classid")
	}
	if has["net_prio"] {
		add("prioidx", "net_prio.prioidx")
	}
	if has["cpuacct"] {
		add("cpu usage (ns)", "cpuacct.usage")
	}
	return details
}

func (s *Source) cgroup2Details(mountpoint, group string) []model.KeyValue {
	m, err := cgroup2.Load(group, cgroup2.WithMountpoint(s.hostPath(mountpoint)))
	if err != nil {
		zap.S().Debugw("loading cgroup", "group", group, "error", err)
		return nil
	}
	metrics, err := m.Stat()
	if err != nil {
		zap.S().Debugw("reading cgroup stats", "group", group, "error", err)
		return nil
	}

	// Stat reports zeros for controllers that are not enabled
	enabled := map[string]bool{}
	if ctrls, err := m.Controllers(); err == nil {
		for _, c := range ctrls {
			enabled[c] = true
		}
	} else {
		zap.S().Debugw("reading cgroup controllers", "group", group, "error", err)
	}

	var details []model.KeyValue
	add := func(key, format string, args ...any) {
		details = append(details, model.KeyValue{Key: key, Value: fmt.Sprintf(format, args...)})
	}
	if pids := metrics.GetPids(); pids != nil && enabled["pids"] {
		add("pids", "%d of %s", pids.GetCurrent(), cgroupMax(pids.GetLimit()))
	}
	if mem := metrics.GetMemory(); mem != nil && enabled["memory"] {
		add("memory usage", "%d", mem.GetUsage())
		add("memory limit", "%s", cgroupMax(mem.GetUsageLimit()))
		add("swap usage", "%d", mem.GetSwapUsage())
	}
	if cpu := metrics.GetCPU(); cpu != nil {
		add("cpu usage (µs)", "%d", cpu.GetUsageUsec())
		add("cpu user/system (µs)", "%d / %d", cpu.GetUserUsec(), cpu.GetSystemUsec())
		if cpu.GetNrPeriods() > 0 {
			add("throttled", "%d of %d periods", cpu.GetNrThrottled(), cpu.GetNrPeriods())
		}
	}
	if ev := metrics.GetMemoryEvents(); ev != nil && enabled["memory"] {
		add("oom kills", "%d", ev.GetOomKill())
	}
	return details
}

func cgroupMax(v uint64) string {
	if v == model.Unlimited {
		return "max"
	}
	return fmt.Sprintf("%d", v)
}
