package model

import "math"

// Unlimited is the value used for a limit with no bound.
const Unlimited = math.MaxUint64

// Limit is a single resource limit.
type Limit struct {
	Name string
	Soft uint64
	Hard uint64
	Unit string
}

// IOStats mirrors /proc/<pid>/io.
type IOStats struct {
	RChar               uint64
	WChar               uint64
	SyscR               uint64
	SyscW               uint64
	ReadBytes           uint64
	WriteBytes          uint64
	CancelledWriteBytes int64

	// Rates are per second and only set when two samples were compared.
	ReadRate  float64
	WriteRate float64
}

// CgroupEntry is one line of /proc/<pid>/cgroup.
type CgroupEntry struct {
	Hierarchy   int
	Controllers []string
	Path        string
	Version     int
	Mountpoint  string
	Details     []KeyValue
}

type KeyValue struct {
	Key   string
	Value string
}
