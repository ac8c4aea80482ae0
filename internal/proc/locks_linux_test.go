//go:build linux

package proc

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLocks(t *testing.T) {
	t.Parallel()
	input := `1: POSIX  ADVISORY  WRITE 2279 00:14:3427 0 EOF
1: -> POSIX  ADVISORY  WRITE 2281 00:14:3427 0 EOF
2: FLOCK  ADVISORY  READ 812 fd:01:1048602 0 EOF
3: OFDLCK ADVISORY  READ -1 08:02:9421 128 255
`
	locks, err := ParseLocks(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, locks, 4)

	assert.Equal(t, Lock{
		Class: "POSIX", Mode: "ADVISORY", Access: "WRITE", PID: 2279,
		Major: 0, Minor: 0x14, Inode: 3427, Start: "0", End: "EOF",
	}, locks[0])
	assert.True(t, locks[1].Blocked)
	assert.Equal(t, "POSIX ADVISORY WRITE (waiting)", locks[1].String())
	assert.Equal(t, uint32(0xfd), locks[2].Major)
	assert.Equal(t, uint64(1048602), locks[2].Inode)
	assert.Equal(t, -1, locks[3].PID)
	assert.Equal(t, "255", locks[3].End)
}

func TestParseLocksErrors(t *testing.T) {
	t.Parallel()
	for name, line := range map[string]string{
		"short":      "1: POSIX ADVISORY WRITE 12",
		"bad pid":    "1: POSIX ADVISORY WRITE x 00:14:1 0 EOF",
		"bad device": "1: POSIX ADVISORY WRITE 12 0014:1 0 EOF",
		"bad inode":  "1: POSIX ADVISORY WRITE 12 00:14:zz 0 EOF",
	} {
		name := name
		line := line
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			_, err := ParseLocks(strings.NewReader(line))
			require.ErrorIs(t, err, ErrParse)
		})
	}
}

func TestParseLocksEmpty(t *testing.T) {
	t.Parallel()
	locks, err := ParseLocks(strings.NewReader("\n"))
	require.NoError(t, err)
	assert.Empty(t, locks)
}
