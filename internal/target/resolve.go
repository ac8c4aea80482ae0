package target

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/pranshuparmar/procdump/internal/proc"
)

// Lookup reports whether a process is present.
type Lookup interface {
	Exists(pid int) bool
}

// ParsePID turns the optional PID argument into a process id without
// touching the filesystem. An empty argument means the calling process.
func ParsePID(arg string) (int, error) {
	arg = strings.TrimSpace(arg)
	if arg == "" {
		return os.Getpid(), nil
	}
	pid, err := strconv.Atoi(arg)
	if err != nil || pid <= 0 {
		return 0, fmt.Errorf("%w: %q is not a process id", proc.ErrInvalidArgument, arg)
	}
	return pid, nil
}

// Require fails with ErrProcessNotFound unless pid is present.
func Require(pid int, procs Lookup) error {
	if !procs.Exists(pid) {
		return fmt.Errorf("%w: %d", proc.ErrProcessNotFound, pid)
	}
	return nil
}

// Resolve parses arg and checks that the process exists. The calling
// process is not looked up.
func Resolve(arg string, procs Lookup) (int, error) {
	pid, err := ParsePID(arg)
	if err != nil {
		return 0, err
	}
	if strings.TrimSpace(arg) == "" {
		return pid, nil
	}
	if err := Require(pid, procs); err != nil {
		return 0, err
	}
	return pid, nil
}
