//go:build linux

package proc

import (
	"strconv"

	"go.uber.org/zap"

	"github.com/pranshuparmar/procdump/pkg/model"
)

type pipeEnd struct {
	pid  int
	comm string
}

type pipeEnds struct {
	readers []pipeEnd
	writers []pipeEnd
}

// peerOf returns the process at the other end of the pipe for a
// descriptor of pid opened with mode. Ends held by pid itself are only
// used when no other process holds one.
func (e *pipeEnds) peerOf(pid int, mode string) *model.PipePeer {
	if e == nil {
		return nil
	}
	var candidates []pipeEnd
	writer := false
	switch mode {
	case "r":
		candidates, writer = e.writers, true
	case "w":
		candidates = e.readers
	default:
		return nil
	}
	if len(candidates) == 0 {
		return nil
	}
	pick := candidates[0]
	for _, c := range candidates {
		if c.pid != pid {
			pick = c
			break
		}
	}
	return &model.PipePeer{PID: pick.pid, Command: pick.comm, Writer: writer}
}

// pipePeers scans every process for descriptors on the given pipe
// inodes. Processes that cannot be inspected are skipped.
func (s *Source) pipePeers(inodes map[uint64]bool) map[uint64]*pipeEnds {
	out := make(map[uint64]*pipeEnds, len(inodes))
	procs, err := s.fs.AllProcs()
	if err != nil {
		zap.S().Debugw("listing processes for pipe peers", "error", err)
		return out
	}
	for _, p := range procs {
		proc, links, err := s.fdLinks(p.PID)
		if err != nil {
			continue
		}
		comm := ""
		for _, l := range links {
			ino, ok := linkInode(l.target, "pipe")
			if !ok || !inodes[ino] {
				continue
			}
			info, err := proc.FDInfo(strconv.Itoa(l.fd))
			if err != nil {
				continue
			}
			if comm == "" {
				comm, _ = proc.Comm()
			}
			ends := out[ino]
			if ends == nil {
				ends = &pipeEnds{}
				out[ino] = ends
			}
			end := pipeEnd{pid: p.PID, comm: comm}
			switch accessMode(info.Flags) {
			case "r":
				ends.readers = append(ends.readers, end)
			case "w":
				ends.writers = append(ends.writers, end)
			}
		}
	}
	return out
}
