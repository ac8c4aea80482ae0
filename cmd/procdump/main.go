//go:build linux

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/pranshuparmar/procdump/internal/config"
	"github.com/pranshuparmar/procdump/internal/logger"
	"github.com/pranshuparmar/procdump/internal/output"
	"github.com/pranshuparmar/procdump/internal/proc"
	"github.com/pranshuparmar/procdump/internal/report"
	"github.com/pranshuparmar/procdump/internal/target"
	"github.com/pranshuparmar/procdump/internal/tui"
)

// To embed version, commit, and build date, use:
// go build -ldflags "-X main.version=v0.1.0 -X main.commit=$(git rev-parse --short HEAD) -X 'main.buildDate=$(date +%Y-%m-%d)'" -o procdump ./cmd/procdump
var (
	version   = "dev"
	commit    = "none"
	buildDate = "unknown"
)

const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

func newRootCommand(stdout, stderr io.Writer) *cobra.Command {
	cfg := &config.Config{}
	cmd := &cobra.Command{
		Use:   "procdump [PID]",
		Short: "Dump everything the kernel knows about a process",
		Long: `procdump prints the environment, sockets, memory maps, memory usage,
open files, resource limits, control groups, I/O counters and threads of
a process. Without a PID it describes itself.`,
		Version:       fmt.Sprintf("%s (commit %s, built %s)", version, commit, buildDate),
		Args:          pidArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			arg := ""
			if len(args) == 1 {
				arg = args[0]
			}
			return run(cmd.Context(), cfg, arg, stdout, stderr)
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetVersionTemplate("procdump {{.Version}}\n")
	cmd.CompletionOptions.DisableDefaultCmd = true
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return fmt.Errorf("%w: %w", proc.ErrInvalidArgument, err)
	})
	cfg.BindFlags(cmd.Flags())
	cmd.Flags().SortFlags = false
	return cmd
}

func pidArgs(_ *cobra.Command, args []string) error {
	if len(args) > 1 {
		return fmt.Errorf("%w: expected at most one PID, got %d arguments", proc.ErrInvalidArgument, len(args))
	}
	return nil
}

func run(ctx context.Context, cfg *config.Config, arg string, stdout, stderr io.Writer) error {
	pid, err := target.ParsePID(arg)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logConfig := logger.DefaultConfig()
	logConfig.Debug = cfg.Debug
	logConfig.Path = cfg.LogFile
	logConfig.Interactive = cfg.Interactive
	logConfig.Console = stderr
	log := logger.New(logConfig)
	defer func() { _ = log.Sync() }()

	src, err := proc.NewSource(cfg.ProcRoot)
	if err != nil {
		return err
	}
	if err := target.Require(pid, src); err != nil {
		return err
	}
	log.Sugar().Debugw("resolved target", "arg", arg, "pid", pid, "root", src.Root())

	if cfg.Interactive {
		section := report.SectionEnv
		if cfg.Tree {
			section = report.SectionTree
		}
		return tui.Run(ctx, src, pid, tui.Options{Section: section, MapsDetail: cfg.MapsDetail})
	}

	opts := cfg.Options()
	if cfg.Short {
		// header and ancestry only
		opts.Sections = map[string]bool{}
	}
	r, err := report.Collect(ctx, src, pid, opts)
	if err != nil {
		return err
	}

	if cfg.Short {
		output.RenderShort(stdout, r, !cfg.NoColor)
		return nil
	}
	output.RenderReport(stdout, r, !cfg.NoColor)
	return nil
}

func exitCode(err error) int {
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, proc.ErrInvalidArgument):
		return exitUsage
	}
	return exitFailure
}

// execute runs the command line and returns the process exit code.
func execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cmd := newRootCommand(stdout, stderr)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(ctx)
	if err != nil {
		fmt.Fprintf(output.NewSafeTerminalWriter(stderr, "procdump: "), "%v\n", err)
	}
	return exitCode(err)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := execute(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
