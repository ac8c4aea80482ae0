//go:build linux

package proc

import (
	"github.com/pranshuparmar/procdump/pkg/model"
)

// Processes lists every process below the proc root. Processes that
// exit while listing are skipped.
func (s *Source) Processes() ([]model.ProcessSummary, error) {
	procs, err := s.fs.AllProcs()
	if err != nil {
		return nil, classifyErr("processes", err, nil)
	}

	processes := make([]model.ProcessSummary, 0, len(procs))
	for _, p := range procs {
		st, err := p.Stat()
		if err != nil {
			continue
		}
		processes = append(processes, model.ProcessSummary{
			PID:     p.PID,
			PPID:    st.PPID,
			User:    s.UserName(p.PID),
			Command: st.Comm,
		})
	}
	return processes, nil
}
