//go:build linux

package proc

import (
	"errors"
	"io/fs"

	"github.com/pranshuparmar/procdump/pkg/model"
)

// Process reads the header information of pid. It is the first read of
// every report, so a missing process surfaces here as ErrProcessNotFound.
func (s *Source) Process(pid int) (model.Process, error) {
	p, err := s.proc(pid, "stat")
	if err != nil {
		return model.Process{}, err
	}
	stat, err := p.Stat()
	if err != nil {
		var pathErr *fs.PathError
		if !errors.As(err, &pathErr) {
			err = parseErrorf("%v", err)
		}
		return model.Process{}, s.classify(pid, "stat", err)
	}

	out := model.Process{
		PID:           stat.PID,
		PPID:          stat.PPID,
		PGRP:          stat.PGRP,
		Session:       stat.Session,
		State:         stat.State,
		Command:       stat.Comm,
		Threads:       stat.NumThreads,
		Nice:          stat.Nice,
		UTime:         ticksToDuration(uint64(stat.UTime)),
		STime:         ticksToDuration(uint64(stat.STime)),
		VirtualBytes:  uint64(stat.VirtualMemory()),
		ResidentBytes: uint64(stat.ResidentMemory()),
		UID:           -1,
		User:          "unknown",
	}

	if boot := s.bootTime(); !boot.IsZero() {
		out.StartedAt = boot.Add(ticksToDuration(stat.Starttime))
	}

	// status is world readable, but a zombie has no memory lines
	if status, err := p.NewStatus(); err == nil {
		out.SharedBytes = status.RssFile + status.RssShmem
		out.UID = int(status.UIDs[0])
	} else if uid, err := s.owner(pid); err == nil {
		out.UID = uid
	}
	if out.UID >= 0 {
		out.User = s.users.Name(out.UID)
	}

	// the following need ptrace access for other users' processes
	out.Cmdline = cmdline(p, stat.Comm)
	if exe, err := p.Executable(); err == nil {
		out.Exe = exe
	}
	if cwd, err := p.Cwd(); err == nil {
		out.Cwd = cwd
	}

	return out, nil
}
