package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"net"
	"os"
	"strings"

	"github.com/gookit/color"
)

const (
	quitCommand = "/quit"
	nickCommand = "/nick "
)

func main() {
	addr := flag.String("addr", "127.0.0.1:12345", "server address")
	name := flag.String("name", "", "display name sent on connect")
	flag.Parse()

	conn, err := net.Dial("tcp4", *addr)
	if err != nil {
		color.Red.Println("unable to connect:", err)
		os.Exit(1)
	}
	defer conn.Close()

	color.Green.Println("connected to", *addr, "— /quit to leave, /nick <name> to rename")

	if *name != "" {
		fmt.Fprintf(conn, "NICK %s\n", *name)
	}

	go func() {
		// The server is the sole framer; print its bytes verbatim.
		_, _ = io.Copy(os.Stdout, conn)
		color.Yellow.Println("server closed the connection")
		os.Exit(0)
	}()

	in := bufio.NewScanner(os.Stdin)
	for in.Scan() {
		line := in.Text()
		switch {
		case line == quitCommand:
			return
		case strings.HasPrefix(line, nickCommand):
			fmt.Fprintf(conn, "NICK %s\n", strings.TrimSpace(line[len(nickCommand):]))
		case line != "":
			fmt.Fprintln(conn, line)
		}
	}
}
