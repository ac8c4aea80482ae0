//go:build linux

package proc

import (
	"github.com/pranshuparmar/procdump/pkg/model"
)

// Ancestry returns the chain of processes from the root down to pid.
func (s *Source) Ancestry(pid int) ([]model.ProcessSummary, error) {
	var chain []model.ProcessSummary
	seen := make(map[int]bool)

	current := pid
	for current > 0 {
		if seen[current] {
			break // loop protection
		}
		seen[current] = true

		p, err := s.fs.Proc(current)
		if err != nil {
			break
		}
		st, err := p.Stat()
		if err != nil {
			break
		}
		chain = append(chain, model.ProcessSummary{
			PID:     st.PID,
			PPID:    st.PPID,
			User:    s.UserName(st.PID),
			Command: st.Comm,
		})

		// pid 1 is the root of the tree; kernel threads hang off pid 0
		if st.PID == 1 || st.PPID == 0 {
			break
		}
		current = st.PPID
	}

	if len(chain) == 0 {
		return nil, classifyErr("ancestry", ErrProcessNotFound, nil)
	}
	return reverse(chain), nil
}

func reverse(in []model.ProcessSummary) []model.ProcessSummary {
	for i, j := 0, len(in)-1; i < j; i, j = i+1, j-1 {
		in[i], in[j] = in[j], in[i]
	}
	return in
}
