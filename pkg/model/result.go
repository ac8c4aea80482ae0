package model

import "time"

// Section holds one category of a report. Err is set when the
// category could not be collected; Value is then the zero value.
type Section[T any] struct {
	Value T
	Err   error
	// Skipped is true when the category was not requested.
	Skipped bool
}

func (s Section[T]) OK() bool {
	return !s.Skipped && s.Err == nil
}

type Report struct {
	Process Process
	// HeaderErr is set when the header could not be read; Process then
	// only carries the PID.
	HeaderErr error
	// Ancestry runs from the root of the process tree down to Process.
	Ancestry []ProcessSummary
	// Launcher is nil when no shell or supervisor was recognized.
	Launcher    *Launcher
	CollectedAt time.Time
	// CPUPercent is only set when two reports were compared.
	CPUPercent float64

	Environment Section[[]EnvVar]
	Sockets     Section[[]Socket]
	Maps        Section[[]MemoryRegion]
	Memory      Section[MemoryUsage]
	Files       Section[[]OpenFile]
	Limits      Section[[]Limit]
	Cgroups     Section[[]CgroupEntry]
	IO          Section[IOStats]
	Tasks       Section[[]Task]
	Tree        Section[[]TreeEntry]
}
