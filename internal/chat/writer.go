package chat

import (
	"bufio"
	"net"
)

// startWriter drains the session's outbound queue onto the connection,
// appending the newline frame. Closing the queue stops it.
func startWriter(conn net.Conn, out <-chan string) {
	go func() {
		w := bufio.NewWriter(conn)
		for line := range out {
			// Best-effort. If the connection breaks, just stop the writer.
			if _, err := w.WriteString(line + "\n"); err != nil {
				return
			}
			if err := w.Flush(); err != nil {
				return
			}
		}
	}()
}

// writeLine is for direct writes on connections that never got a writer
// goroutine, i.e. rejected connections.
func writeLine(conn net.Conn, line string) {
	_, _ = conn.Write([]byte(line + "\n"))
}
