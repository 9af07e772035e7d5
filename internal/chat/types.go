package chat

import (
	"net"

	"github.com/google/uuid"
)

// Session is one active peer connection. The connection handle belongs to
// the registry once the session is allocated; Slot and Label are only ever
// touched by the server's control goroutine.
type Session struct {
	ID    string
	Seq   uint64
	Conn  net.Conn
	Slot  int
	Label string
	Out   chan string // outbound lines drained by the writer goroutine
}

func newSession(conn net.Conn, seq uint64, queue int) *Session {
	if queue <= 0 {
		queue = defaultQueueSize
	}
	return &Session{
		ID:   uuid.NewString(),
		Seq:  seq,
		Conn: conn,
		Slot: -1,
		Out:  make(chan string, queue),
	}
}

// enqueue is non-blocking; false means the outbound queue is full.
func (s *Session) enqueue(line string) bool {
	select {
	case s.Out <- line:
		return true
	default:
		return false
	}
}

type eventKind int

const (
	eventAccept eventKind = iota
	eventConsoleLine
	eventConsoleEOF
	eventPeerLine
	eventPeerGone
)

type event struct {
	kind eventKind
	conn net.Conn
	sess *Session
	text string
}

var ErrServerFull = errorString("server_full")

type errorString string

func (e errorString) Error() string { return string(e) }
