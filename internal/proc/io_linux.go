//go:build linux

package proc

import (
	"errors"
	"io/fs"

	"github.com/pranshuparmar/procdump/pkg/model"
)

// IO reads /proc/<pid>/io, which requires ptrace access.
func (s *Source) IO(pid int) (model.IOStats, error) {
	p, err := s.proc(pid, "io")
	if err != nil {
		return model.IOStats{}, err
	}
	pio, err := p.IO()
	if err != nil {
		var pathErr *fs.PathError
		if !errors.As(err, &pathErr) {
			err = parseErrorf("%v", err)
		}
		return model.IOStats{}, s.classify(pid, "io", err)
	}
	return model.IOStats{
		RChar:               pio.RChar,
		WChar:               pio.WChar,
		SyscR:               pio.SyscR,
		SyscW:               pio.SyscW,
		ReadBytes:           pio.ReadBytes,
		WriteBytes:          pio.WriteBytes,
		CancelledWriteBytes: pio.CancelledWriteBytes,
	}, nil
}
