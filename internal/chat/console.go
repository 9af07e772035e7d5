package chat

import (
	"bufio"
	"io"
)

// QuitCommand shuts the server down when typed on the administrative console.
const QuitCommand = "/quit"

// readConsole pumps operator input into the event channel. End of input is a
// shutdown trigger of its own and is reported as a distinct event.
func (s *Server) readConsole(in io.Reader) {
	reader := bufio.NewReader(in)
	for {
		line, err := readLine(reader)
		if err != nil {
			s.deliver(event{kind: eventConsoleEOF})
			return
		}
		s.deliver(event{kind: eventConsoleLine, text: line})
	}
}
