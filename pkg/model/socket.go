package model

// Socket is an open socket owned by the target process.
type Socket struct {
	Protocol   string // tcp, tcp6, udp, udp6, unix or unknown
	FD         int
	Inode      uint64
	LocalAddr  string
	RemoteAddr string
	State      string

	TxQueue uint64
	RxQueue uint64

	// unix sockets only
	Type string
	Path string
}
