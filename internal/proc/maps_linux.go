//go:build linux

package proc

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/prometheus/procfs"
	"go.uber.org/zap"
	"golang.org/x/sys/unix"

	"github.com/pranshuparmar/procdump/pkg/model"
)

// MemoryMaps returns the mappings of pid in address order. With detail
// set, the per-mapping counters of /proc/<pid>/smaps are attached.
func (s *Source) MemoryMaps(pid int, detail bool) ([]model.MemoryRegion, error) {
	p, err := s.proc(pid, "maps")
	if err != nil {
		return nil, err
	}
	maps, err := p.ProcMaps()
	if err != nil {
		return nil, s.classify(pid, "maps", err)
	}

	regions := make([]model.MemoryRegion, 0, len(maps))
	for _, m := range maps {
		regions = append(regions, model.MemoryRegion{
			Start:    uint64(m.StartAddr),
			End:      uint64(m.EndAddr),
			Perms:    permString(m.Perms),
			Offset:   m.Offset,
			Device:   fmt.Sprintf("%02x:%02x", unix.Major(m.Dev), unix.Minor(m.Dev)),
			Inode:    m.Inode,
			Pathname: m.Pathname,
		})
	}
	if !detail {
		return regions, nil
	}

	details, err := s.smaps(pid)
	if err != nil {
		zap.S().Debugw("reading smaps", "pid", pid, "error", err)
		return regions, nil
	}
	for i := range regions {
		regions[i].Detail = details[regions[i].Start]
	}
	return regions, nil
}

func permString(p *procfs.ProcMapPermissions) string {
	if p == nil {
		return "----"
	}
	b := []byte("---p")
	if p.Read {
		b[0] = 'r'
	}
	if p.Write {
		b[1] = 'w'
	}
	if p.Execute {
		b[2] = 'x'
	}
	if p.Shared {
		b[3] = 's'
	}
	return string(b)
}

func (s *Source) smaps(pid int) (map[uint64]*model.RegionDetail, error) {
	f, err := os.Open(s.path(pid, "smaps"))
	if err != nil {
		return nil, s.classify(pid, "smaps", err)
	}
	defer f.Close()
	return ParseSmaps(f)
}

// ParseSmaps reads /proc/<pid>/smaps and returns the counters of each
// mapping keyed by its start address.
func ParseSmaps(r io.Reader) (map[uint64]*model.RegionDetail, error) {
	out := make(map[uint64]*model.RegionDetail)
	var cur *model.RegionDetail

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		key, value, found := strings.Cut(line, ":")
		if !found || strings.Contains(key, "-") {
			// mapping header: "7f1c2a000000-7f1c2a021000 rw-p ..."
			addr, _, ok := strings.Cut(strings.Fields(line)[0], "-")
			if !ok {
				return nil, parseErrorf("smaps: unexpected line %q", line)
			}
			start, err := strconv.ParseUint(addr, 16, 64)
			if err != nil {
				return nil, parseErrorf("smaps: bad address %q", addr)
			}
			cur = &model.RegionDetail{}
			out[start] = cur
			continue
		}
		if cur == nil {
			return nil, parseErrorf("smaps: counter before mapping header")
		}

		fields := strings.Fields(value)
		if len(fields) != 2 || fields[1] != "kB" {
			continue // VmFlags, THPeligible, ProtectionKey
		}
		kb, err := strconv.ParseUint(fields[0], 10, 64)
		if err != nil {
			return nil, parseErrorf("smaps: bad value in %q", line)
		}
		setRegionCounter(cur, key, kb*1024)
	}
	if err := scanner.Err(); err != nil {
		return nil, parseErrorf("smaps: %v", err)
	}
	return out, nil
}

func setRegionCounter(d *model.RegionDetail, key string, v uint64) {
	switch key {
	case "Rss":
		d.Rss = v
	case "Pss":
		d.Pss = v
	case "Shared_Clean":
		d.SharedClean = v
	case "Shared_Dirty":
		d.SharedDirty = v
	case "Private_Clean":
		d.PrivateClean = v
	case "Private_Dirty":
		d.PrivateDirty = v
	case "Referenced":
		d.Referenced = v
	case "Anonymous":
		d.Anonymous = v
	case "Swap":
		d.Swap = v
	}
}
