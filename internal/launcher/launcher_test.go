package launcher

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pranshuparmar/procdump/pkg/model"
)

func chain(commands ...string) []model.ProcessSummary {
	out := make([]model.ProcessSummary, len(commands))
	for i, c := range commands {
		out[i] = model.ProcessSummary{PID: i + 1, Command: c}
	}
	return out
}

func TestDetect(t *testing.T) {
	for name, tc := range map[string]struct {
		ancestors []model.ProcessSummary
		want      *model.Launcher
	}{
		"empty": {
			ancestors: nil,
			want:      nil,
		},
		"systemd service": {
			ancestors: chain("systemd"),
			want:      &model.Launcher{Kind: model.LauncherSupervisor, Name: "systemd"},
		},
		"interactive shell": {
			ancestors: chain("systemd", "sshd", "sshd", "bash"),
			want:      &model.Launcher{Kind: model.LauncherShell, Name: "bash"},
		},
		"closest wins": {
			ancestors: chain("systemd", "sshd", "zsh", "supervisord"),
			want:      &model.Launcher{Kind: model.LauncherSupervisor, Name: "supervisord"},
		},
		"pm2 daemon": {
			ancestors: chain("systemd", "PM2 v5.3.0: God"),
			want:      &model.Launcher{Kind: model.LauncherSupervisor, Name: "pm2"},
		},
		"container": {
			ancestors: chain("systemd", "containerd-shim", "tini"),
			want:      &model.Launcher{Kind: model.LauncherSupervisor, Name: "tini"},
		},
		"unknown": {
			ancestors: chain("kthreadd"),
			want:      nil,
		},
	} {
		name := name
		tc := tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, Detect(tc.ancestors))
		})
	}
}
