//go:build linux

package proc

import (
	"time"

	"go.uber.org/zap"
)

func (s *Source) bootTime() time.Time {
	s.bootOnce.Do(func() {
		st, err := s.fs.Stat()
		if err != nil {
			zap.S().Debugw("reading boot time", "error", err)
			return
		}
		s.boot = time.Unix(int64(st.BootTime), 0)
	})
	return s.boot
}

func ticksPerSecond() time.Duration {
	return 100 // USER_HZ, fixed for the /proc ABI
}

// ticksToDuration splits whole seconds off first so that large tick
// counts do not overflow.
func ticksToDuration(ticks uint64) time.Duration {
	hz := uint64(ticksPerSecond())
	return time.Duration(ticks/hz)*time.Second + time.Duration(ticks%hz)*time.Second/time.Duration(hz)
}
