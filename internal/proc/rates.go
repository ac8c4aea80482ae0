package proc

import (
	"time"

	"github.com/pranshuparmar/procdump/pkg/model"
)

// CPUPercent returns the share of one CPU consumed between two cpu time
// samples taken elapsed apart.
func CPUPercent(prev, cur, elapsed time.Duration) float64 {
	if elapsed <= 0 || cur < prev {
		return 0
	}
	return float64(cur-prev) / float64(elapsed) * 100
}

// TaskCPU fills CPUPercent of the tasks in cur from an earlier sample.
// Threads that did not exist in prev are left at zero.
func TaskCPU(prev, cur []model.Task, elapsed time.Duration) []model.Task {
	before := make(map[int]time.Duration, len(prev))
	for _, t := range prev {
		before[t.TID] = t.UTime + t.STime
	}
	out := make([]model.Task, len(cur))
	for i, t := range cur {
		if b, ok := before[t.TID]; ok {
			t.CPUPercent = CPUPercent(b, t.UTime+t.STime, elapsed)
		}
		out[i] = t
	}
	return out
}

// IORates fills the per-second rates of cur from an earlier sample.
func IORates(prev, cur model.IOStats, elapsed time.Duration) model.IOStats {
	if elapsed <= 0 {
		return cur
	}
	secs := elapsed.Seconds()
	if cur.RChar >= prev.RChar {
		cur.ReadRate = float64(cur.RChar-prev.RChar) / secs
	}
	if cur.WChar >= prev.WChar {
		cur.WriteRate = float64(cur.WChar-prev.WChar) / secs
	}
	return cur
}

// Uptime returns how long pid has been running, or zero when unknown.
func Uptime(p model.Process, now time.Time) time.Duration {
	if p.StartedAt.IsZero() || now.Before(p.StartedAt) {
		return 0
	}
	return now.Sub(p.StartedAt)
}
