// Package config holds the command line configuration of procdump.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/pflag"

	"github.com/pranshuparmar/procdump/internal/proc"
	"github.com/pranshuparmar/procdump/internal/report"
)

const DefaultProcRoot = "/proc"

type Config struct {
	Interactive bool
	NoColor     bool
	MapsDetail  bool
	Tree        bool
	Short       bool
	Sections    string
	ProcRoot    string
	Debug       bool
	LogFile     string
}

// BindFlags registers every option on fs.
func (c *Config) BindFlags(fs *pflag.FlagSet) {
	fs.BoolVarP(&c.Interactive, "interactive", "i", false, "Interactive mode (TUI)")
	fs.BoolVar(&c.NoColor, "no-color", false, "Disable colorized output")
	fs.BoolVar(&c.MapsDetail, "maps-detail", false, "Include smaps counters for every memory mapping")
	fs.BoolVar(&c.Tree, "tree", false, "Add the process tree section")
	fs.BoolVar(&c.Short, "short", false, "Print a one-line summary")
	fs.StringVarP(&c.Sections, "sections", "s", "", "Comma separated sections to show ("+strings.Join(report.AllSections, ", ")+")")
	fs.StringVar(&c.ProcRoot, "proc-root", DefaultProcRoot, "Root of the proc filesystem")
	fs.BoolVar(&c.Debug, "debug", false, "Enable debug logging")
	fs.StringVar(&c.LogFile, "log-file", "", "Also write logs to a rotating file")
}

// Validate checks the options that cannot be checked by the flag parser.
func (c *Config) Validate() error {
	if c.Sections != "" {
		if _, err := report.ParseSections(c.Sections); err != nil {
			return err
		}
	}
	if c.ProcRoot == "" {
		return fmt.Errorf("%w: --proc-root must not be empty", proc.ErrInvalidArgument)
	}
	fi, err := os.Stat(c.ProcRoot)
	if err != nil {
		return fmt.Errorf("%w: --proc-root: %w", proc.ErrInvalidArgument, err)
	}
	if !fi.IsDir() {
		return fmt.Errorf("%w: --proc-root %s is not a directory", proc.ErrInvalidArgument, c.ProcRoot)
	}
	if c.Interactive && c.Short {
		return fmt.Errorf("%w: --short cannot be combined with --interactive", proc.ErrInvalidArgument)
	}
	return nil
}

// Options turns the section flags into report options.
func (c *Config) Options() report.Options {
	opts := report.Options{MapsDetail: c.MapsDetail}
	if c.Sections != "" {
		// Validate has already rejected bad names
		opts.Sections, _ = report.ParseSections(c.Sections)
	} else if c.Tree {
		opts.Sections = make(map[string]bool, len(report.AllSections))
		for _, s := range report.DefaultSections {
			opts.Sections[s] = true
		}
	}
	if c.Tree && opts.Sections != nil {
		opts.Sections[report.SectionTree] = true
	}
	return opts
}
