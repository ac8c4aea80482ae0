package model

// MemoryRegion is one line of /proc/<pid>/maps.
type MemoryRegion struct {
	Start    uint64
	End      uint64
	Perms    string
	Offset   int64
	Device   string
	Inode    uint64
	Pathname string

	Detail *RegionDetail
}

// Size returns the length of the mapping in bytes.
func (r MemoryRegion) Size() uint64 {
	if r.End < r.Start {
		return 0
	}
	return r.End - r.Start
}

// RegionDetail holds the smaps counters of a single mapping, in bytes.
type RegionDetail struct {
	Rss          uint64
	Pss          uint64
	SharedClean  uint64
	SharedDirty  uint64
	PrivateClean uint64
	PrivateDirty uint64
	Referenced   uint64
	Anonymous    uint64
	Swap         uint64
}

// MemoryUsage summarizes the memory footprint of a process, in bytes.
type MemoryUsage struct {
	Resident  uint64
	Virtual   uint64
	Shared    uint64
	Peak      uint64
	HighWater uint64
	Data      uint64
	Stack     uint64
	Swap      uint64

	// Rollup is nil when smaps_rollup is not available.
	Rollup *RegionDetail
}
