//go:build linux

package proc

import (
	"errors"
	"io/fs"
	"net"
	"strconv"

	"github.com/prometheus/procfs"
	"go.uber.org/zap"

	"github.com/pranshuparmar/procdump/pkg/model"
)

var tcpStates = map[uint64]string{
	1:  "ESTABLISHED",
	2:  "SYN_SENT",
	3:  "SYN_RECV",
	4:  "FIN_WAIT1",
	5:  "FIN_WAIT2",
	6:  "TIME_WAIT",
	7:  "CLOSE",
	8:  "CLOSE_WAIT",
	9:  "LAST_ACK",
	10: "LISTEN",
	11: "CLOSING",
	12: "NEW_SYN_RECV",
}

func mapTCPState(st uint64) string {
	if s, ok := tcpStates[st]; ok {
		return s
	}
	return "UNKNOWN"
}

func joinAddr(ip net.IP, port uint64) string {
	host := "*"
	if ip != nil {
		host = ip.String()
	}
	return net.JoinHostPort(host, strconv.FormatUint(port, 10))
}

// Sockets returns the sockets pid holds open. Socket tables are read
// from /proc/<pid>/net, so they describe the network namespace of the
// target rather than ours.
func (s *Source) Sockets(pid int) ([]model.Socket, error) {
	_, links, err := s.fdLinks(pid)
	if err != nil {
		return nil, err
	}

	type owned struct {
		fd    int
		inode uint64
	}
	var socks []owned
	for _, l := range links {
		if ino, ok := linkInode(l.target, "socket"); ok {
			socks = append(socks, owned{fd: l.fd, inode: ino})
		}
	}
	if len(socks) == 0 {
		return []model.Socket{}, nil
	}

	tables, err := s.socketTables(pid)
	if err != nil {
		return nil, err
	}

	out := make([]model.Socket, 0, len(socks))
	for _, o := range socks {
		sock, ok := tables[o.inode]
		if !ok {
			sock = model.Socket{Protocol: "unknown", Inode: o.inode}
		}
		sock.FD = o.fd
		out = append(out, sock)
	}
	return out, nil
}

func (s *Source) socketTables(pid int) (map[uint64]model.Socket, error) {
	netfs, err := procfs.NewFS(s.path(pid))
	if err != nil {
		return nil, s.classify(pid, "net", err)
	}

	tables := make(map[uint64]model.Socket)
	skip := func(table string, err error) bool {
		if err == nil {
			return false
		}
		// tcp6 and udp6 are absent when IPv6 is disabled
		if !errors.Is(err, fs.ErrNotExist) {
			zap.S().Debugw("reading socket table", "table", table, "pid", pid, "error", err)
		}
		return true
	}
	addIP := func(proto string, lines procfs.NetIPSocket) {
		for _, l := range lines {
			state := mapTCPState(l.St)
			if proto == "udp" || proto == "udp6" {
				// udp only uses ESTABLISHED for connected sockets
				if l.St == 7 {
					state = "UNCONN"
				}
			}
			tables[l.Inode] = model.Socket{
				Protocol:   proto,
				Inode:      l.Inode,
				LocalAddr:  joinAddr(l.LocalAddr, l.LocalPort),
				RemoteAddr: joinAddr(l.RemAddr, l.RemPort),
				State:      state,
				TxQueue:    l.TxQueue,
				RxQueue:    l.RxQueue,
			}
		}
	}

	if t, err := netfs.NetTCP(); !skip("tcp", err) {
		addIP("tcp", procfs.NetIPSocket(t))
	}
	if t, err := netfs.NetTCP6(); !skip("tcp6", err) {
		addIP("tcp6", procfs.NetIPSocket(t))
	}
	if t, err := netfs.NetUDP(); !skip("udp", err) {
		addIP("udp", procfs.NetIPSocket(t))
	}
	if t, err := netfs.NetUDP6(); !skip("udp6", err) {
		addIP("udp6", procfs.NetIPSocket(t))
	}
	if u, err := netfs.NetUNIX(); !skip("unix", err) {
		for _, l := range u.Rows {
			tables[l.Inode] = model.Socket{
				Protocol:  "unix",
				Inode:     l.Inode,
				LocalAddr: l.Path,
				State:     l.State.String(),
				Type:      l.Type.String(),
				Path:      l.Path,
			}
		}
	}
	return tables, nil
}
