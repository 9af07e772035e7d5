package chat

import (
	"errors"
	"io"
	"log/slog"
	"net"
	"os"
	"sync"
	"time"
)

// Server runs the chat relay: one control goroutine owns the registry and
// serializes every event (new connection, console line, peer line, peer
// gone), so a message is fully fanned out before the next inbound line is
// interpreted.
type Server struct {
	cfg      Config
	logger   *slog.Logger
	reg      *Registry
	router   *Router
	console  io.Reader
	listener net.Listener

	events chan event
	stopCh chan struct{}
	doneCh chan struct{}
	once   sync.Once

	seq uint64 // monotonic session counter, control goroutine only
}

func NewServer(cfg Config, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	reg := NewRegistry(cfg.MaxClients)
	return &Server{
		cfg:     cfg,
		logger:  logger,
		reg:     reg,
		router:  NewRouter(reg, logger),
		console: os.Stdin,
		events:  make(chan event, 64),
		stopCh:  make(chan struct{}),
		doneCh:  make(chan struct{}),
	}
}

// WithConsole replaces the administrative input stream (stdin by default).
// Must be called before Start.
func (s *Server) WithConsole(in io.Reader) *Server {
	s.console = in
	return s
}

func (s *Server) Start() error {
	ln, err := net.Listen("tcp4", s.cfg.Addr)
	if err != nil {
		return err
	}
	s.listener = ln

	go s.run()
	go s.acceptLoop(ln)
	go s.readConsole(s.console)

	s.logger.Info("server started", "addr", ln.Addr().String(), "capacity", s.reg.Cap())
	return nil
}

// Addr reports the bound listen address. Only valid after Start.
func (s *Server) Addr() net.Addr {
	return s.listener.Addr()
}

// Stop triggers shutdown from outside the control loop. Safe to call more
// than once and alongside a console-initiated shutdown.
func (s *Server) Stop() {
	s.once.Do(func() { close(s.stopCh) })
}

// Wait blocks until the control loop has released every session and closed
// the listener.
func (s *Server) Wait() {
	<-s.doneCh
}

// deliver hands an event to the control loop unless shutdown already began.
func (s *Server) deliver(ev event) {
	select {
	case s.events <- ev:
	case <-s.stopCh:
	}
}

func (s *Server) acceptLoop(ln net.Listener) {
	for {
		conn, err := ln.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				// listener closed during shutdown
				return
			}
			s.logger.Error("accept failed", "error", err)
			continue
		}
		s.deliver(event{kind: eventAccept, conn: conn})
	}
}

func (s *Server) run() {
	defer s.shutdown()
	for {
		select {
		case ev := <-s.events:
			start := time.Now()
			eventType := ""

			switch ev.kind {
			case eventAccept:
				eventType = "accept"
				s.handleAccept(ev.conn)
			case eventConsoleLine:
				if ev.text == QuitCommand {
					s.logger.Info("quit requested from console")
					return
				}
				eventType = "console"
				s.handleConsoleLine(ev.text)
			case eventConsoleEOF:
				s.logger.Info("console closed, shutting down")
				return
			case eventPeerLine:
				eventType = "peer_line"
				s.handlePeerLine(ev.sess, ev.text)
			case eventPeerGone:
				eventType = "peer_gone"
				s.handlePeerGone(ev.sess)
			}

			if eventType != "" {
				EventProcessingDuration.WithLabelValues(eventType).Observe(time.Since(start).Seconds())
			}
		case <-s.stopCh:
			return
		}
	}
}

func (s *Server) handleAccept(conn net.Conn) {
	s.seq++
	sess := newSession(conn, s.seq, s.cfg.QueueSize)
	if _, err := s.reg.Allocate(sess); err != nil {
		RejectedConnections.Inc()
		s.logger.Warn("registry full, rejecting connection", "addr", conn.RemoteAddr().String())
		writeLine(conn, "Server full.")
		_ = conn.Close()
		return
	}

	startWriter(conn, sess.Out)
	go s.readFrom(sess)

	ConnectedClients.Set(float64(s.reg.Len()))
	s.logger.Info("client connected",
		"id", sess.ID, "slot", sess.Slot, "label", sess.Label, "addr", conn.RemoteAddr().String())
}

func (s *Server) handleConsoleLine(line string) {
	if line == "" {
		return
	}
	MessagesTotal.WithLabelValues("console").Inc()
	s.router.Broadcast(ServerLabel, line, nil)
}

func (s *Server) handlePeerLine(sess *Session, line string) {
	if sess.Slot < 0 {
		// already released (e.g. dropped on overflow); ignore leftovers
		return
	}

	switch p := parseLine(line); p.kind {
	case inputRenameEmpty:
		sess.enqueue("Name cannot be empty")
	case inputRenameInvalid:
		sess.enqueue("Invalid name")
	case inputRename:
		MessagesTotal.WithLabelValues("rename").Inc()
		s.logger.Info("client renamed",
			"id", sess.ID, "slot", sess.Slot, "from", sess.Label, "to", p.name)
		s.reg.Rename(sess.Slot, p.name)
	case inputChat:
		if p.body == "" {
			return
		}
		MessagesTotal.WithLabelValues("chat").Inc()
		s.logger.Info("message", "from", sess.Label, "text", p.body)
		s.router.Broadcast(sess.Label, p.body, sess)
	}
}

func (s *Server) handlePeerGone(sess *Session) {
	if sess.Slot < 0 {
		return
	}
	s.logger.Info("client disconnected", "id", sess.ID, "slot", sess.Slot, "label", sess.Label)
	s.reg.Release(sess.Slot)
	ConnectedClients.Set(float64(s.reg.Len()))
}

func (s *Server) shutdown() {
	s.Stop() // unblocks any reader stuck in deliver

	if s.listener != nil {
		_ = s.listener.Close()
	}
	s.reg.ForEachActive(func(sess *Session) {
		s.reg.Release(sess.Slot)
	})
	ConnectedClients.Set(0)

	s.logger.Info("server stopped")
	close(s.doneCh)
}
