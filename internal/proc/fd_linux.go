//go:build linux

package proc

import (
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/prometheus/procfs"
	"go.uber.org/zap"
	"golang.org/x/sys/unix"

	"github.com/pranshuparmar/procdump/pkg/model"
)

type fdLink struct {
	fd     int
	target string
}

// fdLinks lists the descriptors of pid with their link targets, sorted
// by descriptor number. Descriptors closed while listing are skipped.
func (s *Source) fdLinks(pid int) (procfs.Proc, []fdLink, error) {
	p, err := s.proc(pid, "fd")
	if err != nil {
		return procfs.Proc{}, nil, err
	}
	fds, err := p.FileDescriptors()
	if err != nil {
		return procfs.Proc{}, nil, s.classify(pid, "fd", err)
	}

	links := make([]fdLink, 0, len(fds))
	for _, fd := range fds {
		target, err := os.Readlink(s.path(pid, "fd", strconv.Itoa(int(fd))))
		if err != nil {
			continue
		}
		links = append(links, fdLink{fd: int(fd), target: target})
	}
	sort.Slice(links, func(i, j int) bool { return links[i].fd < links[j].fd })
	return p, links, nil
}

// linkInode extracts the inode of a "socket:[123]" or "pipe:[123]" link.
func linkInode(target, kind string) (uint64, bool) {
	prefix := kind + ":["
	if !strings.HasPrefix(target, prefix) || !strings.HasSuffix(target, "]") {
		return 0, false
	}
	n, err := strconv.ParseUint(target[len(prefix):len(target)-1], 10, 64)
	return n, err == nil
}

func fileKind(target string) model.FileKind {
	switch {
	case strings.HasPrefix(target, "socket:["):
		return model.FileKindSocket
	case strings.HasPrefix(target, "pipe:["):
		return model.FileKindPipe
	case strings.HasPrefix(target, "anon_inode:"):
		return model.FileKindAnon
	case strings.HasPrefix(target, "/"):
		return model.FileKindFile
	}
	return model.FileKindOther
}

// accessMode decodes the octal flags field of /proc/<pid>/fdinfo/<fd>.
func accessMode(flags string) string {
	v, err := strconv.ParseUint(flags, 8, 64)
	if err != nil {
		return ""
	}
	switch v & unix.O_ACCMODE {
	case unix.O_RDONLY:
		return "r"
	case unix.O_WRONLY:
		return "w"
	case unix.O_RDWR:
		return "rw"
	}
	return ""
}

// OpenFiles lists the descriptors of pid. Locks held by pid and the
// processes at the other end of its pipes are attached when available.
func (s *Source) OpenFiles(pid int) ([]model.OpenFile, error) {
	p, links, err := s.fdLinks(pid)
	if err != nil {
		return nil, err
	}

	locks, err := s.Locks()
	if err != nil {
		zap.S().Debugw("reading locks", "error", err)
	}
	var held []Lock
	for _, l := range locks {
		if l.PID == pid {
			held = append(held, l)
		}
	}

	pipes := make(map[uint64]bool)
	for _, l := range links {
		if ino, ok := linkInode(l.target, "pipe"); ok {
			pipes[ino] = true
		}
	}
	var peers map[uint64]*pipeEnds
	if len(pipes) > 0 {
		peers = s.pipePeers(pipes)
	}

	files := make([]model.OpenFile, 0, len(links))
	for _, l := range links {
		f := model.OpenFile{
			FD:     l.fd,
			Target: l.target,
			Kind:   fileKind(l.target),
		}
		if info, err := p.FDInfo(strconv.Itoa(l.fd)); err == nil {
			f.Mode = accessMode(info.Flags)
			f.Pos, _ = strconv.ParseInt(info.Pos, 10, 64)
		}

		switch f.Kind {
		case model.FileKindFile:
			if len(held) > 0 {
				f.Lock = s.lockFor(pid, l.fd, held)
			}
		case model.FileKindPipe:
			ino, _ := linkInode(l.target, "pipe")
			f.Peer = peers[ino].peerOf(pid, f.Mode)
		}
		files = append(files, f)
	}
	return files, nil
}

func (s *Source) lockFor(pid, fd int, held []Lock) string {
	var st unix.Stat_t
	if err := unix.Stat(s.path(pid, "fd", strconv.Itoa(fd)), &st); err != nil {
		return ""
	}
	for _, l := range held {
		if l.Inode == st.Ino && l.Major == unix.Major(st.Dev) && l.Minor == unix.Minor(st.Dev) {
			return l.String()
		}
	}
	return ""
}
