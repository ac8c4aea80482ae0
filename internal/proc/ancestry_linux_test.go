//go:build linux

package proc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pranshuparmar/procdump/pkg/model"
)

func ancestryFixture(t *testing.T) *fixture {
	f := newFixture(t)
	f.addProc(fixtureProc{pid: 1, ppid: 0, comm: "systemd"})
	f.addProc(fixtureProc{pid: 300, ppid: 1, comm: "sshd"})
	f.addProc(fixtureProc{pid: 400, ppid: 300, comm: "bash", uid: 1000})
	f.addProc(fixtureProc{pid: 500, ppid: 400, comm: "procdump", uid: 1000})
	f.addProc(fixtureProc{pid: 2, ppid: 0, comm: "kthreadd"})
	return f
}

func TestAncestry(t *testing.T) {
	t.Parallel()
	src := ancestryFixture(t).source()

	chain, err := src.Ancestry(500)
	require.NoError(t, err)

	var commands []string
	for _, p := range chain {
		commands = append(commands, p.Command)
	}
	assert.Equal(t, []string{"systemd", "sshd", "bash", "procdump"}, commands)
	assert.Equal(t, 400, chain[3].PPID)

	chain, err = src.Ancestry(2)
	require.NoError(t, err)
	assert.Len(t, chain, 1)

	_, err = src.Ancestry(12345)
	require.ErrorIs(t, err, ErrProcessNotFound)
}

func TestAncestryBrokenChain(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	// parent already exited
	f.addProc(fixtureProc{pid: 60, ppid: 59, comm: "orphan"})

	chain, err := f.source().Ancestry(60)
	require.NoError(t, err)
	require.Len(t, chain, 1)
	assert.Equal(t, "orphan", chain[0].Command)
}

func TestProcesses(t *testing.T) {
	t.Parallel()
	f := ancestryFixture(t)
	f.write("self", "not a process")

	procs, err := f.source().Processes()
	require.NoError(t, err)
	require.Len(t, procs, 5)

	byPID := make(map[int]model.ProcessSummary)
	for _, p := range procs {
		byPID[p.PID] = p
	}
	assert.Equal(t, 300, byPID[400].PPID)
	assert.Equal(t, "bash", byPID[400].Command)

	tree := BuildTree(procs, 500, true)
	require.Len(t, tree, 4)
	assert.True(t, tree[3].Focus)
}
