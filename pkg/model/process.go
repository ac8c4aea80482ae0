package model

import "time"

// Process is the header information shown above every report.
type Process struct {
	PID     int
	PPID    int
	PGRP    int
	Session int
	State   string
	Command string
	Cmdline string
	Exe     string
	Cwd     string

	StartedAt time.Time
	UID       int
	User      string

	Threads int
	Nice    int
	UTime   time.Duration
	STime   time.Duration

	VirtualBytes  uint64
	ResidentBytes uint64
	SharedBytes   uint64
}

// CPUTime is the total time spent in user and kernel mode.
func (p Process) CPUTime() time.Duration {
	return p.UTime + p.STime
}

// ProcessSummary holds basic information about a process for listing
type ProcessSummary struct {
	PID     int
	PPID    int
	User    string
	Command string
}

// TreeEntry is one row of a flattened process tree.
type TreeEntry struct {
	ProcessSummary
	Depth  int
	Prefix string
	// Focus marks the process the report is about.
	Focus bool
}

// EnvVar is a single NAME=value pair from a process environment.
type EnvVar struct {
	Name  string
	Value string
}

// Task is a thread of the target process.
type Task struct {
	TID   int
	State string
	Name  string
	UTime time.Duration
	STime time.Duration
	// CPUPercent is only set when two samples were compared.
	CPUPercent float64
}

const (
	LauncherShell      = "shell"
	LauncherSupervisor = "supervisor"
)

// Launcher is what started a process, guessed from its ancestry.
type Launcher struct {
	Kind string
	Name string
}
