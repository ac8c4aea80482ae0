//go:build linux

package proc

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Lock is an entry of /proc/locks.
type Lock struct {
	Class   string // POSIX, FLOCK, OFDLCK, LEASE...
	Mode    string // ADVISORY or MANDATORY
	Access  string // READ or WRITE
	PID     int
	Major   uint32
	Minor   uint32
	Inode   uint64
	Start   string
	End     string
	Blocked bool
}

func (l Lock) String() string {
	s := l.Class + " " + l.Mode + " " + l.Access
	if l.Blocked {
		s += " (waiting)"
	}
	return s
}

// Locks reads the file locks currently held or awaited on the system.
func (s *Source) Locks() ([]Lock, error) {
	f, err := os.Open(filepath.Join(s.root, "locks"))
	if err != nil {
		return nil, classifyErr("locks", err, nil)
	}
	defer f.Close()
	return ParseLocks(f)
}

// ParseLocks parses the contents of /proc/locks, e.g.
//
//	1: POSIX  ADVISORY  WRITE 2279 00:14:3427 0 EOF
//	1: -> POSIX  ADVISORY  WRITE 2281 00:14:3427 0 EOF
func ParseLocks(r io.Reader) ([]Lock, error) {
	var locks []Lock
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		fields = fields[1:] // ordinal
		var l Lock
		if len(fields) > 0 && fields[0] == "->" {
			l.Blocked = true
			fields = fields[1:]
		}
		if len(fields) < 7 {
			return nil, parseErrorf("locks: short line %q", scanner.Text())
		}
		l.Class, l.Mode, l.Access = fields[0], fields[1], fields[2]

		pid, err := strconv.Atoi(fields[3])
		if err != nil {
			return nil, parseErrorf("locks: bad pid %q", fields[3])
		}
		l.PID = pid

		dev := strings.Split(fields[4], ":")
		if len(dev) != 3 {
			return nil, parseErrorf("locks: bad device %q", fields[4])
		}
		major, err1 := strconv.ParseUint(dev[0], 16, 32)
		minor, err2 := strconv.ParseUint(dev[1], 16, 32)
		inode, err3 := strconv.ParseUint(dev[2], 10, 64)
		if err1 != nil || err2 != nil || err3 != nil {
			return nil, parseErrorf("locks: bad device %q", fields[4])
		}
		l.Major, l.Minor, l.Inode = uint32(major), uint32(minor), inode
		l.Start, l.End = fields[5], fields[6]
		locks = append(locks, l)
	}
	if err := scanner.Err(); err != nil {
		return nil, parseErrorf("locks: %v", err)
	}
	return locks, nil
}
