//go:build linux

package proc

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pranshuparmar/procdump/pkg/model"
)

func TestParseEnviron(t *testing.T) {
	t.Parallel()
	for name, tc := range map[string]struct {
		raw  []string
		want []model.EnvVar
	}{
		"sorted": {
			raw:  []string{"PATH=/bin", "HOME=/root", "LANG=C"},
			want: []model.EnvVar{{Name: "HOME", Value: "/root"}, {Name: "LANG", Value: "C"}, {Name: "PATH", Value: "/bin"}},
		},
		"first duplicate wins": {
			raw:  []string{"A=1", "A=2"},
			want: []model.EnvVar{{Name: "A", Value: "1"}},
		},
		"value with equals": {
			raw:  []string{"OPTS=-Dx=y"},
			want: []model.EnvVar{{Name: "OPTS", Value: "-Dx=y"}},
		},
		"no separator": {
			raw:  []string{"FLAG"},
			want: []model.EnvVar{{Name: "FLAG"}},
		},
		"empty entries": {
			raw:  []string{"", "X=", ""},
			want: []model.EnvVar{{Name: "X"}},
		},
		"empty": {
			raw:  nil,
			want: []model.EnvVar{},
		},
	} {
		name := name
		tc := tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, ParseEnviron(tc.raw))
		})
	}
}

func TestEnvironment(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	f.addProc(fixtureProc{pid: 7, comm: "app", environ: []string{"TERM=xterm", "HOME=/home/alice"}})

	vars, err := f.source().Environment(7)
	require.NoError(t, err)
	assert.Equal(t, []model.EnvVar{
		{Name: "HOME", Value: "/home/alice"},
		{Name: "TERM", Value: "xterm"},
	}, vars)
}

func TestEnvironmentPermissionDenied(t *testing.T) {
	t.Parallel()
	skipIfRoot(t)
	f := newFixture(t)
	f.addProc(fixtureProc{pid: 7, comm: "app", environ: []string{"SECRET=1"}})
	require.NoError(t, os.Chmod(f.path("7", "environ"), 0))

	_, err := f.source().Environment(7)
	require.ErrorIs(t, err, ErrPermissionDenied)
	assert.Equal(t, "permission denied", Reason(err))
}
