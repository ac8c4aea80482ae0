//go:build linux

package proc

import (
	"os"
	"os/user"
	"strconv"
	"syscall"

	lru "github.com/hashicorp/golang-lru/v2"
)

// UserCache resolves uids to user names. Lookups that fail are cached
// as the numeric uid.
type UserCache struct {
	cache  *lru.Cache[int, string]
	lookup func(uid string) (*user.User, error)
}

func NewUserCache(size int) (*UserCache, error) {
	cache, err := lru.New[int, string](size)
	if err != nil {
		return nil, err
	}
	return &UserCache{cache: cache, lookup: user.LookupId}, nil
}

func (c *UserCache) Name(uid int) string {
	if name, ok := c.cache.Get(uid); ok {
		return name
	}
	name := strconv.Itoa(uid)
	if u, err := c.lookup(name); err == nil && u.Username != "" {
		name = u.Username
	}
	c.cache.Add(uid, name)
	return name
}

// owner returns the uid owning the process directory.
func (s *Source) owner(pid int) (int, error) {
	info, err := os.Stat(s.path(pid))
	if err != nil {
		return -1, err
	}
	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return -1, parseErrorf("no ownership information for pid %d", pid)
	}
	return int(stat.Uid), nil
}

// UserName returns the owner of pid, or "unknown".
func (s *Source) UserName(pid int) string {
	uid, err := s.owner(pid)
	if err != nil {
		return "unknown"
	}
	return s.users.Name(uid)
}
