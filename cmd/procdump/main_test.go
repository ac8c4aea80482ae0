//go:build linux

package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const demoStat = "4242 (demo) S 1 4242 4242 0 -1 4194304 10 0 0 0 150 50 0 0 20 0 1 0 1000 8192000 100 18446744073709551615"

// procRoot writes a proc root holding a single process, pid 4242.
func procRoot(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	files := map[string]string{
		"stat":         "btime 1700000000\n",
		"4242/stat":    demoStat + strings.Repeat(" 0", 20) + "\n",
		"4242/cmdline": "demo\x00--serve\x00",
		"4242/environ": "HOME=/root\x00LANG=C\x00",
	}
	for rel, content := range files {
		path := filepath.Join(root, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return root
}

func runArgs(args ...string) (int, string, string) {
	var stdout, stderr bytes.Buffer
	code := execute(context.Background(), args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestReport(t *testing.T) {
	root := procRoot(t)
	code, stdout, stderr := runArgs("--proc-root", root, "--no-color", "-s", "env", "4242")

	assert.Equal(t, exitOK, code, stderr)
	assert.True(t, strings.HasPrefix(stdout, "Process 4242 (demo)\n"), stdout)
	assert.Contains(t, stdout, "demo --serve")
	assert.Contains(t, stdout, "\nEnvironment (2)\n  HOME=/root\n  LANG=C\n")
	assert.NotContains(t, stdout, "Sockets")
	assert.Empty(t, stderr)
}

func TestShort(t *testing.T) {
	root := procRoot(t)
	code, stdout, stderr := runArgs("--proc-root", root, "--no-color", "--short", "4242")

	assert.Equal(t, exitOK, code, stderr)
	assert.True(t, strings.HasPrefix(stdout, "demo (pid 4242)  [S, 1 threads, "), stdout)
	assert.NotContains(t, stdout, "Environment")
}

func TestReportSelf(t *testing.T) {
	if _, err := os.Stat("/proc/self/stat"); err != nil {
		t.Skip("no /proc on this host")
	}
	code, stdout, stderr := runArgs("--no-color")

	require.Equal(t, exitOK, code, stderr)
	pid := strconv.Itoa(os.Getpid())
	assert.True(t, strings.HasPrefix(stdout, "Process "+pid+" ("), stdout)
	assert.Contains(t, stdout, "\nMemory Usage\n")

	m := regexp.MustCompile(`\nTasks \((\d+)\)\n`).FindStringSubmatchIndex(stdout)
	require.NotNil(t, m, stdout)
	n, err := strconv.Atoi(stdout[m[2]:m[3]])
	require.NoError(t, err)
	assert.GreaterOrEqual(t, n, 1)
	// the main thread shares the process id
	assert.Regexp(t, `(?m)^\s+`+pid+`\s+\S+\s`, stdout[m[1]:])
}

func TestReportHeaderUnreadable(t *testing.T) {
	root := procRoot(t)
	require.NoError(t, os.WriteFile(filepath.Join(root, "4242", "stat"), []byte("4242 (demo) S x y z\n"), 0o644))

	code, stdout, stderr := runArgs("--proc-root", root, "--no-color", "-s", "env", "4242")

	assert.Equal(t, exitOK, code, stderr)
	assert.True(t, strings.HasPrefix(stdout, "Process 4242\n  unavailable: parse error: "), stdout)
	assert.Contains(t, stdout, "\nEnvironment (2)\n  HOME=/root\n  LANG=C\n")
}

func TestInvalidPIDBeforeProcRoot(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing")
	code, stdout, stderr := runArgs("--proc-root", missing, "nginx")

	assert.Equal(t, exitUsage, code)
	assert.Empty(t, stdout)
	assert.Equal(t, "procdump: invalid argument: \"nginx\" is not a process id\n", stderr)
}

func TestExitCodes(t *testing.T) {
	root := procRoot(t)
	for name, tc := range map[string]struct {
		args    []string
		code    int
		message string
	}{
		"not a number":   {args: []string{"--proc-root", root, "abc"}, code: exitUsage, message: `procdump: invalid argument: "abc" is not a process id`},
		"zero":           {args: []string{"--proc-root", root, "0"}, code: exitUsage, message: "not a process id"},
		"missing":        {args: []string{"--proc-root", root, "999"}, code: exitFailure, message: "procdump: no such process: 999"},
		"unknown flag":   {args: []string{"--bogus"}, code: exitUsage, message: "unknown flag: --bogus"},
		"two pids":       {args: []string{"--proc-root", root, "1", "2"}, code: exitUsage, message: "expected at most one PID"},
		"bad section":    {args: []string{"--proc-root", root, "-s", "env,nope", "4242"}, code: exitUsage, message: `unknown section "nope"`},
		"bad proc root":  {args: []string{"--proc-root", filepath.Join(root, "missing")}, code: exitUsage, message: "--proc-root"},
		"short with tui": {args: []string{"--proc-root", root, "-i", "--short"}, code: exitUsage, message: "--short cannot be combined"},
	} {
		t.Run(name, func(t *testing.T) {
			code, stdout, stderr := runArgs(tc.args...)
			assert.Equal(t, tc.code, code)
			assert.Empty(t, stdout)
			assert.Contains(t, stderr, tc.message)
			assert.True(t, strings.HasSuffix(stderr, "\n"))
		})
	}
}

func TestVersion(t *testing.T) {
	code, stdout, _ := runArgs("--version")
	assert.Equal(t, exitOK, code)
	assert.Equal(t, "procdump dev (commit none, built unknown)\n", stdout)
}
