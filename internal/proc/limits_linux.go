//go:build linux

package proc

import (
	"context"
	"errors"
	"io/fs"

	"github.com/shirou/gopsutil/v3/common"
	"github.com/shirou/gopsutil/v3/process"

	"github.com/pranshuparmar/procdump/pkg/model"
)

var limitNames = []struct {
	resource int32
	name     string
	unit     string
}{
	{process.RLIMIT_CPU, "Cpu Time", "seconds"},
	{process.RLIMIT_FSIZE, "File Size", "bytes"},
	{process.RLIMIT_DATA, "Data Size", "bytes"},
	{process.RLIMIT_STACK, "Stack Size", "bytes"},
	{process.RLIMIT_CORE, "Core File Size", "bytes"},
	{process.RLIMIT_RSS, "Resident Set", "bytes"},
	{process.RLIMIT_NPROC, "Processes", ""},
	{process.RLIMIT_NOFILE, "Open Files", ""},
	{process.RLIMIT_MEMLOCK, "Locked Memory", "bytes"},
	{process.RLIMIT_AS, "Address Space", "bytes"},
	{process.RLIMIT_LOCKS, "File Locks", ""},
	{process.RLIMIT_SIGPENDING, "Pending Signals", ""},
	{process.RLIMIT_MSGQUEUE, "Msgqueue Size", "bytes"},
	{process.RLIMIT_NICE, "Nice Priority", ""},
	{process.RLIMIT_RTPRIO, "Realtime Priority", ""},
	{process.RLIMIT_RTTIME, "Realtime Timeout", "µs"},
}

// Limits returns the soft and hard resource limits of pid.
func (s *Source) Limits(ctx context.Context, pid int) ([]model.Limit, error) {
	if !s.Exists(pid) {
		return nil, classifyErr("limits", ErrProcessNotFound, nil)
	}
	ctx = context.WithValue(ctx, common.EnvKey, common.EnvMap{common.HostProcEnvKey: s.root})

	p := &process.Process{Pid: int32(pid)}
	stats, err := p.RlimitWithContext(ctx)
	if err != nil {
		var pathErr *fs.PathError
		if !errors.As(err, &pathErr) {
			// limitToUint failed on a value
			err = parseErrorf("%v", err)
		}
		return nil, s.classify(pid, "limits", err)
	}

	byResource := make(map[int32]process.RlimitStat, len(stats))
	for _, st := range stats {
		byResource[st.Resource] = st
	}
	limits := make([]model.Limit, 0, len(limitNames))
	for _, l := range limitNames {
		st, ok := byResource[l.resource]
		if !ok {
			continue
		}
		limits = append(limits, model.Limit{Name: l.name, Soft: st.Soft, Hard: st.Hard, Unit: l.unit})
	}
	return limits, nil
}
