package proc

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/prometheus/procfs"
	"golang.org/x/sys/unix"
)

var (
	// ErrInvalidArgument is returned for a malformed process identifier.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrProcessNotFound is returned when the process does not exist (anymore).
	ErrProcessNotFound = errors.New("no such process")
	// ErrPermissionDenied is returned when the caller may not read a category.
	ErrPermissionDenied = errors.New("permission denied")
	// ErrParse is returned when kernel data has an unexpected shape.
	ErrParse = errors.New("parse error")
	// ErrZombie is returned when the process has exited but was not yet
	// reaped: its directory exists while most of its files refuse reads.
	ErrZombie = fmt.Errorf("%w (zombie)", ErrProcessNotFound)
)

// Reason returns the short explanation used for an unavailable section.
func Reason(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrPermissionDenied):
		return ErrPermissionDenied.Error()
	case errors.Is(err, ErrZombie):
		return ErrZombie.Error()
	case errors.Is(err, ErrProcessNotFound):
		return ErrProcessNotFound.Error()
	}
	msg := err.Error()
	if errors.Is(err, ErrParse) {
		// drop the category prefix added while classifying
		if i := strings.Index(msg, ErrParse.Error()); i > 0 {
			return msg[i:]
		}
	}
	return msg
}

func parseErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrParse, fmt.Sprintf(format, args...))
}

// classifyErr maps an error from reading a /proc file onto the error
// taxonomy. alive reports whether the process directory still exists.
func classifyErr(what string, err error, alive func() bool) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrProcessNotFound), errors.Is(err, ErrPermissionDenied), errors.Is(err, ErrParse):
		return fmt.Errorf("%s: %w", what, err)
	case errors.Is(err, fs.ErrPermission):
		return fmt.Errorf("%s: %w", what, ErrPermissionDenied)
	case errors.Is(err, procfs.ErrFileParse):
		return fmt.Errorf("%s: %w: %w", what, ErrParse, err)
	case isGone(err):
		if alive == nil || !alive() {
			return fmt.Errorf("%s: %w", what, ErrProcessNotFound)
		}
		if errors.Is(err, unix.ESRCH) {
			return fmt.Errorf("%s: %w", what, ErrZombie)
		}
		return fmt.Errorf("%s: not available: %w", what, err)
	}
	return fmt.Errorf("%s: %w", what, err)
}

// isGone reports errors that show up when a process exits while being read.
func isGone(err error) bool {
	return errors.Is(err, fs.ErrNotExist) || errors.Is(err, unix.ESRCH)
}
