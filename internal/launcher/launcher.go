// Package launcher guesses what started a process from its ancestry.
package launcher

import (
	"strings"

	"github.com/pranshuparmar/procdump/pkg/model"
)

var knownSupervisors = map[string]string{
	"supervisord":     "supervisord",
	"supervisor":      "supervisord",
	"gunicorn":        "gunicorn",
	"uwsgi":           "uwsgi",
	"s6-supervise":    "s6",
	"s6":              "s6",
	"s6-svscan":       "s6",
	"runsv":           "runit",
	"runit":           "runit",
	"runit-init":      "runit",
	"openrc":          "openrc",
	"openrc-init":     "openrc",
	"monit":           "monit",
	"circusd":         "circus",
	"containerd-shim": "containerd",
	"conmon":          "podman",
	"systemd":         "systemd",
	"daemontools":     "daemontools",
	"init":            "init",
	"tini":            "tini",
	"docker-init":     "docker-init",
	"dumb-init":       "dumb-init",
	"forever":         "forever",
	"cron":            "cron",
	"crond":           "cron",
}

var shells = map[string]bool{
	"bash": true,
	"zsh":  true,
	"sh":   true,
	"fish": true,
	"csh":  true,
	"tcsh": true,
	"ksh":  true,
	"dash": true,
}

// Detect looks at the ancestors of a process, root first, and returns
// the closest shell or known supervisor. It returns nil when neither
// is found.
func Detect(ancestors []model.ProcessSummary) *model.Launcher {
	for i := len(ancestors) - 1; i >= 0; i-- {
		name := strings.ToLower(strings.TrimSpace(ancestors[i].Command))
		if shells[name] {
			return &model.Launcher{Kind: model.LauncherShell, Name: name}
		}
		// pm2 renames its daemon to "PM2 v5.3.0: God Daemon"
		if strings.Contains(strings.ReplaceAll(name, " ", ""), "pm2") {
			return &model.Launcher{Kind: model.LauncherSupervisor, Name: "pm2"}
		}
		if label, ok := knownSupervisors[name]; ok {
			return &model.Launcher{Kind: model.LauncherSupervisor, Name: label}
		}
	}
	return nil
}
