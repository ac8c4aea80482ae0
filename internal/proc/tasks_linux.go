//go:build linux

package proc

import (
	"sort"

	"github.com/pranshuparmar/procdump/pkg/model"
)

// Tasks lists the threads of pid ordered by thread id. The main thread
// has the same id as the process.
func (s *Source) Tasks(pid int) ([]model.Task, error) {
	if _, err := s.proc(pid, "task"); err != nil {
		return nil, err
	}
	threads, err := s.fs.AllThreads(pid)
	if err != nil {
		return nil, s.classify(pid, "task", err)
	}

	tasks := make([]model.Task, 0, len(threads))
	for _, t := range threads {
		st, err := t.Stat()
		if err != nil {
			if isGone(err) {
				continue // thread exited while listing
			}
			return nil, s.classify(pid, "task", err)
		}
		tasks = append(tasks, model.Task{
			TID:   t.PID,
			State: st.State,
			Name:  st.Comm,
			UTime: ticksToDuration(uint64(st.UTime)),
			STime: ticksToDuration(uint64(st.STime)),
		})
	}
	if len(tasks) == 0 {
		return nil, classifyErr("task", ErrProcessNotFound, nil)
	}
	sort.Slice(tasks, func(i, j int) bool { return tasks[i].TID < tasks[j].TID })
	return tasks, nil
}
