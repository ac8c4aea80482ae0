//go:build linux

package proc

import (
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const fixtureBootTime = 1700000000

// fixture is a fake proc root built below t.TempDir().
type fixture struct {
	t    *testing.T
	root string
}

type fixtureProc struct {
	pid     int
	ppid    int
	comm    string
	state   string
	utime   uint64
	stime   uint64
	start   uint64
	threads int
	uid     int
	cmdline []string
	environ []string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{t: t, root: t.TempDir()}
	f.write("stat", fmt.Sprintf("btime %d\nprocesses 42\n", fixtureBootTime))
	return f
}

func (f *fixture) write(rel, content string) {
	f.t.Helper()
	path := filepath.Join(f.root, rel)
	require.NoError(f.t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(f.t, os.WriteFile(path, []byte(content), 0o644))
}

func (f *fixture) symlink(rel, target string) {
	f.t.Helper()
	path := filepath.Join(f.root, rel)
	require.NoError(f.t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(f.t, os.Symlink(target, path))
}

func (f *fixture) path(elem ...string) string {
	return filepath.Join(append([]string{f.root}, elem...)...)
}

// statLine renders /proc/<pid>/stat with the fields the collectors use
// and zeros for the rest.
func statLine(p fixtureProc) string {
	fields := []string{
		p.state,
		strconv.Itoa(p.ppid),
		strconv.Itoa(p.pid), // pgrp
		strconv.Itoa(p.pid), // session
		"0", "-1", "4194304", "10", "0", "0", "0",
		strconv.FormatUint(p.utime, 10),
		strconv.FormatUint(p.stime, 10),
		"0", "0", "20", "0",
		strconv.Itoa(p.threads),
		"0",
		strconv.FormatUint(p.start, 10),
		"8192000", // vsize
		"100",     // rss pages
		"18446744073709551615",
	}
	for i := 0; i < 20; i++ {
		fields = append(fields, "0")
	}
	return fmt.Sprintf("%d (%s) %s\n", p.pid, p.comm, strings.Join(fields, " "))
}

// addProc writes the stat, status, cmdline, environ and main thread of p.
func (f *fixture) addProc(p fixtureProc) {
	f.t.Helper()
	if p.state == "" {
		p.state = "S"
	}
	if p.threads == 0 {
		p.threads = 1
	}
	dir := strconv.Itoa(p.pid)
	f.write(filepath.Join(dir, "stat"), statLine(p))
	f.write(filepath.Join(dir, "comm"), p.comm+"\n")
	f.write(filepath.Join(dir, "task", dir, "stat"), statLine(p))
	f.write(filepath.Join(dir, "status"), fmt.Sprintf(
		"Name:\t%s\nState:\t%s (sleeping)\nPid:\t%d\nPPid:\t%d\nUid:\t%d\t%d\t%d\t%d\n"+
			"VmPeak:\t   12000 kB\nVmSize:\t   8000 kB\nVmHWM:\t    900 kB\nVmRSS:\t    400 kB\n"+
			"RssAnon:\t    100 kB\nRssFile:\t    250 kB\nRssShmem:\t     50 kB\n"+
			"VmData:\t    300 kB\nVmStk:\t    132 kB\nVmSwap:\t      8 kB\nThreads:\t%d\n",
		p.comm, p.state, p.pid, p.ppid, p.uid, p.uid, p.uid, p.uid, p.threads))

	var cmdline string
	for _, a := range p.cmdline {
		cmdline += a + "\x00"
	}
	f.write(filepath.Join(dir, "cmdline"), cmdline)

	var environ string
	for _, e := range p.environ {
		environ += e + "\x00"
	}
	f.write(filepath.Join(dir, "environ"), environ)
	require.NoError(f.t, os.MkdirAll(f.path(dir, "fd"), 0o755))
	require.NoError(f.t, os.MkdirAll(f.path(dir, "fdinfo"), 0o755))
}

// addFD links fd of pid to target and writes its fdinfo.
func (f *fixture) addFD(pid, fd int, target, flags string) {
	f.t.Helper()
	dir := strconv.Itoa(pid)
	f.symlink(filepath.Join(dir, "fd", strconv.Itoa(fd)), target)
	f.write(filepath.Join(dir, "fdinfo", strconv.Itoa(fd)),
		fmt.Sprintf("pos:\t%d\nflags:\t%s\nmnt_id:\t25\nino:\t1234\n", fd*10, flags))
}

func (f *fixture) source() *Source {
	f.t.Helper()
	s, err := NewSource(f.root, WithHostRoot(f.root))
	require.NoError(f.t, err)
	s.users.lookup = func(uid string) (*user.User, error) {
		if uid == "1000" {
			return &user.User{Uid: uid, Username: "alice"}, nil
		}
		return nil, user.UnknownUserIdError(0)
	}
	return s
}

func skipIfRoot(t *testing.T) {
	t.Helper()
	if os.Geteuid() == 0 {
		t.Skip("file permissions are not enforced for root")
	}
}
