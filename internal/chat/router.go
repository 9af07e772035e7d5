package chat

import (
	"fmt"
	"log/slog"
)

// ServerLabel is the fixed origin label for administrative broadcasts.
const ServerLabel = "server"

// Router frames messages and fans them out to active sessions.
type Router struct {
	reg    *Registry
	logger *slog.Logger
}

func NewRouter(reg *Registry, logger *slog.Logger) *Router {
	if logger == nil {
		logger = slog.Default()
	}
	return &Router{reg: reg, logger: logger}
}

// Broadcast sends "[label] body" to every active session except exclude
// (nil excludes nobody). Delivery is best-effort per recipient, with one
// exception made explicit: a recipient whose outbound queue is full is
// disconnected rather than silently skipped. A slow consumer loses its
// session, never a message gap it cannot see.
func (ro *Router) Broadcast(label, body string, exclude *Session) {
	line := fmt.Sprintf("[%s] %s", label, body)

	var overflowed []*Session
	ro.reg.ForEachActive(func(s *Session) {
		if s == exclude {
			return
		}
		if !s.enqueue(line) {
			overflowed = append(overflowed, s)
		}
	})

	for _, s := range overflowed {
		ro.logger.Warn("outbound queue overflow, dropping session",
			"id", s.ID, "slot", s.Slot, "label", s.Label)
		OverflowDisconnects.Inc()
		ro.reg.Release(s.Slot)
	}
	if len(overflowed) > 0 {
		ConnectedClients.Set(float64(ro.reg.Len()))
	}
}
