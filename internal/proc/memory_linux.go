//go:build linux

package proc

import (
	"go.uber.org/zap"

	"github.com/pranshuparmar/procdump/pkg/model"
)

// MemoryUsage combines /proc/<pid>/status with smaps_rollup. The
// rollup is optional: it needs ptrace access and a 4.14+ kernel.
func (s *Source) MemoryUsage(pid int) (model.MemoryUsage, error) {
	p, err := s.proc(pid, "status")
	if err != nil {
		return model.MemoryUsage{}, err
	}
	status, err := p.NewStatus()
	if err != nil {
		return model.MemoryUsage{}, s.classify(pid, "status", err)
	}

	usage := model.MemoryUsage{
		Resident:  status.VmRSS,
		Virtual:   status.VmSize,
		Shared:    status.RssFile + status.RssShmem,
		Peak:      status.VmPeak,
		HighWater: status.VmHWM,
		Data:      status.VmData,
		Stack:     status.VmStk,
		Swap:      status.VmSwap,
	}

	rollup, err := p.ProcSMapsRollup()
	if err != nil {
		zap.S().Debugw("reading smaps_rollup", "pid", pid, "error", err)
		return usage, nil
	}
	usage.Rollup = &model.RegionDetail{
		Rss:          rollup.Rss,
		Pss:          rollup.Pss,
		SharedClean:  rollup.SharedClean,
		SharedDirty:  rollup.SharedDirty,
		PrivateClean: rollup.PrivateClean,
		PrivateDirty: rollup.PrivateDirty,
		Referenced:   rollup.Referenced,
		Anonymous:    rollup.Anonymous,
		Swap:         rollup.Swap,
	}
	return usage, nil
}
