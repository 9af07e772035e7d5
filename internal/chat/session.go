package chat

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// readFrom pumps lines from the peer into the event channel until EOF or a
// read error, then reports the session gone. Deliveries are guarded against
// shutdown so readers never block after the control loop has exited.
func (s *Server) readFrom(sess *Session) {
	reader := bufio.NewReader(sess.Conn)
	for {
		line, err := readLine(reader)
		if err != nil {
			s.deliver(event{kind: eventPeerGone, sess: sess})
			return
		}
		s.deliver(event{kind: eventPeerLine, sess: sess, text: line})
	}
}

func readLine(r *bufio.Reader) (string, error) {
	line, err := r.ReadString('\n')
	if err == nil {
		return strings.TrimRight(line, "\r\n"), nil
	}
	if err == io.EOF && line != "" {
		// last line without newline
		return strings.TrimRight(line, "\r\n"), nil
	}
	if err == io.EOF {
		return "", io.EOF
	}
	return "", fmt.Errorf("read: %w", err)
}
