//go:build linux

package proc

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/procfs"
)

// DefaultRoot is where the kernel exposes per-process information.
const DefaultRoot = procfs.DefaultMountPoint

// Source reads process information below a proc root. The root is
// /proc on a live system and a fixture directory in tests.
type Source struct {
	root     string
	hostRoot string
	fs       procfs.FS
	users    *UserCache

	bootOnce sync.Once
	boot     time.Time
}

// Option configures a Source.
type Option func(*Source)

// WithHostRoot resolves mountpoints found in mount tables (such as
// cgroup hierarchies) below dir instead of /.
func WithHostRoot(dir string) Option {
	return func(s *Source) {
		s.hostRoot = dir
	}
}

func NewSource(root string, opts ...Option) (*Source, error) {
	if root == "" {
		root = DefaultRoot
	}
	fs, err := procfs.NewFS(root)
	if err != nil {
		return nil, fmt.Errorf("open proc filesystem %s: %w", root, err)
	}
	users, err := NewUserCache(256)
	if err != nil {
		return nil, err
	}
	s := &Source{root: root, hostRoot: "/", fs: fs, users: users}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Root returns the proc mount point this source reads from.
func (s *Source) Root() string {
	return s.root
}

// Exists reports whether pid currently has a directory below the root.
func (s *Source) Exists(pid int) bool {
	info, err := os.Stat(s.path(pid))
	return err == nil && info.IsDir()
}

func (s *Source) path(pid int, elem ...string) string {
	return filepath.Join(append([]string{s.root, strconv.Itoa(pid)}, elem...)...)
}

func (s *Source) proc(pid int, what string) (procfs.Proc, error) {
	p, err := s.fs.Proc(pid)
	if err != nil {
		return procfs.Proc{}, s.classify(pid, what, err)
	}
	return p, nil
}

func (s *Source) classify(pid int, what string, err error) error {
	return classifyErr(what, err, func() bool { return s.Exists(pid) })
}
