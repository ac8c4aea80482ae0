//go:build linux

package proc

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pranshuparmar/procdump/pkg/model"
)

const (
	mapsFile = `55d0c8a00000-55d0c8a21000 r-xp 00000000 08:01 1048602                    /usr/bin/worker
55d0c8c20000-55d0c8c22000 rw-p 00020000 08:01 1048602                    /usr/bin/worker
7ffd1e5fe000-7ffd1e61f000 rw-p 00000000 00:00 0                          [stack]
7f1c2a000000-7f1c2a001000 rw-s 00000000 00:05 3                          /dev/zero (deleted)
`
	smapsFile = `55d0c8a00000-55d0c8a21000 r-xp 00000000 08:01 1048602                    /usr/bin/worker
Size:                132 kB
Rss:                 120 kB
Pss:                  60 kB
Shared_Clean:        120 kB
Shared_Dirty:          0 kB
Private_Clean:         0 kB
Private_Dirty:         0 kB
Referenced:          120 kB
Anonymous:             0 kB
Swap:                  0 kB
THPeligible:    0
VmFlags: rd ex mr mw me dw sd
7ffd1e5fe000-7ffd1e61f000 rw-p 00000000 00:00 0                          [stack]
Rss:                  16 kB
Pss:                  16 kB
Private_Dirty:        16 kB
Anonymous:            16 kB
Swap:                  4 kB
`
)

func TestMemoryMaps(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	f.addProc(fixtureProc{pid: 5, comm: "worker"})
	f.write("5/maps", mapsFile)
	f.write("5/smaps", smapsFile)
	src := f.source()

	regions, err := src.MemoryMaps(5, false)
	require.NoError(t, err)
	require.Len(t, regions, 4)
	assert.Equal(t, model.MemoryRegion{
		Start:    0x55d0c8a00000,
		End:      0x55d0c8a21000,
		Perms:    "r-xp",
		Offset:   0,
		Device:   "08:01",
		Inode:    1048602,
		Pathname: "/usr/bin/worker",
	}, regions[0])
	assert.Equal(t, uint64(0x21000), regions[0].Size())
	assert.Equal(t, int64(0x20000), regions[1].Offset)
	assert.Equal(t, "[stack]", regions[2].Pathname)
	assert.Equal(t, "rw-s", regions[3].Perms)
	assert.Equal(t, "/dev/zero (deleted)", regions[3].Pathname)
	for _, r := range regions {
		assert.Nil(t, r.Detail)
	}

	detailed, err := src.MemoryMaps(5, true)
	require.NoError(t, err)
	require.NotNil(t, detailed[0].Detail)
	assert.Equal(t, uint64(120*1024), detailed[0].Detail.Rss)
	assert.Equal(t, uint64(60*1024), detailed[0].Detail.Pss)
	require.NotNil(t, detailed[2].Detail)
	assert.Equal(t, uint64(4*1024), detailed[2].Detail.Swap)
	assert.Nil(t, detailed[1].Detail)
}

func TestMemoryMapsDetailUnavailable(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	f.addProc(fixtureProc{pid: 5, comm: "worker"})
	f.write("5/maps", mapsFile)

	regions, err := f.source().MemoryMaps(5, true)
	require.NoError(t, err)
	require.Len(t, regions, 4)
	assert.Nil(t, regions[0].Detail)
}

func TestMemoryMapsParseError(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	f.addProc(fixtureProc{pid: 5, comm: "worker"})
	f.write("5/maps", "not-a-map\n")

	_, err := f.source().MemoryMaps(5, false)
	require.ErrorIs(t, err, ErrParse)
}

func TestParseSmapsErrors(t *testing.T) {
	t.Parallel()
	for name, input := range map[string]string{
		"counter first": "Rss: 4 kB\n",
		"bad address":   "zzzz-1000 r--p 00000000 00:00 0\nRss: 4 kB\n",
		"bad value":     "1000-2000 r--p 00000000 00:00 0\nRss: x kB\n",
	} {
		name := name
		input := input
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			_, err := ParseSmaps(strings.NewReader(input))
			require.ErrorIs(t, err, ErrParse)
		})
	}
}

func TestMemoryUsage(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	f.addProc(fixtureProc{pid: 5, comm: "worker"})
	f.write("5/smaps_rollup", `55d0c8a00000-7ffd1e61f000 ---p 00000000 00:00 0                          [rollup]
Rss:                 400 kB
Pss:                 210 kB
Shared_Clean:        250 kB
Shared_Dirty:          0 kB
Private_Clean:        50 kB
Private_Dirty:       100 kB
Referenced:          380 kB
Anonymous:           100 kB
Swap:                  8 kB
`)

	usage, err := f.source().MemoryUsage(5)
	require.NoError(t, err)
	assert.Equal(t, uint64(400*1024), usage.Resident)
	assert.Equal(t, uint64(8000*1024), usage.Virtual)
	assert.Equal(t, uint64(300*1024), usage.Shared)
	assert.Equal(t, uint64(12000*1024), usage.Peak)
	assert.Equal(t, uint64(900*1024), usage.HighWater)
	assert.Equal(t, uint64(300*1024), usage.Data)
	assert.Equal(t, uint64(132*1024), usage.Stack)
	assert.Equal(t, uint64(8*1024), usage.Swap)
	require.NotNil(t, usage.Rollup)
	assert.Equal(t, uint64(210*1024), usage.Rollup.Pss)
	assert.Equal(t, uint64(100*1024), usage.Rollup.PrivateDirty)
}

func TestMemoryUsageWithoutRollup(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	f.addProc(fixtureProc{pid: 5, comm: "worker"})
	f.write("5/smaps_rollup", "header\nRss: lots\n")

	usage, err := f.source().MemoryUsage(5)
	require.NoError(t, err)
	assert.Equal(t, uint64(400*1024), usage.Resident)
	assert.Nil(t, usage.Rollup)
}
