package model

type FileKind string

const (
	FileKindFile   FileKind = "file"
	FileKindSocket FileKind = "socket"
	FileKindPipe   FileKind = "pipe"
	FileKindAnon   FileKind = "anon"
	FileKindOther  FileKind = "other"
)

// OpenFile is an entry of /proc/<pid>/fd.
type OpenFile struct {
	FD     int
	Target string
	Kind   FileKind
	Mode   string // r, w or rw
	Pos    int64

	// Lock describes a /proc/locks entry held on this file, if any.
	Lock string
	Peer *PipePeer
}

// PipePeer is the process on the other end of a pipe.
type PipePeer struct {
	PID     int
	Command string
	// Writer is true when the peer holds the write end.
	Writer bool
}
