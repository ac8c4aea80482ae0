//go:build linux

package proc

import (
	"sort"
	"strings"

	"github.com/pranshuparmar/procdump/pkg/model"
)

// Environment returns the environment pid was started with, sorted by
// name. A name repeated in the block keeps its first value, which is
// the one getenv(3) returns.
func (s *Source) Environment(pid int) ([]model.EnvVar, error) {
	p, err := s.proc(pid, "environ")
	if err != nil {
		return nil, err
	}
	raw, err := p.Environ()
	if err != nil {
		return nil, s.classify(pid, "environ", err)
	}
	return ParseEnviron(raw), nil
}

// ParseEnviron turns NAME=value strings into sorted variables.
func ParseEnviron(raw []string) []model.EnvVar {
	seen := make(map[string]bool, len(raw))
	vars := make([]model.EnvVar, 0, len(raw))
	for _, e := range raw {
		if e == "" {
			continue
		}
		name, value, _ := strings.Cut(e, "=")
		if seen[name] {
			continue
		}
		seen[name] = true
		vars = append(vars, model.EnvVar{Name: name, Value: value})
	}
	sort.SliceStable(vars, func(i, j int) bool {
		return vars[i].Name < vars[j].Name
	})
	return vars
}
