package chat

import "fmt"

// Registry is the fixed-capacity slot table of active sessions.
//
// Single-writer ownership: only the server's control goroutine calls into
// the registry, so there is no locking.
type Registry struct {
	slots []*Session
}

func NewRegistry(capacity int) *Registry {
	if capacity <= 0 {
		capacity = defaultMaxClients
	}
	return &Registry{slots: make([]*Session, capacity)}
}

func (r *Registry) Cap() int { return len(r.slots) }

// Len counts the occupied slots.
func (r *Registry) Len() int {
	n := 0
	for _, s := range r.slots {
		if s != nil {
			n++
		}
	}
	return n
}

// Allocate stores the session in the first free slot and assigns its default
// label, derived from the session's sequence number. Returns ErrServerFull
// without touching the session when every slot is occupied; the caller owns
// the rejection (send the full notice, close the handle).
func (r *Registry) Allocate(sess *Session) (int, error) {
	for i, s := range r.slots {
		if s != nil {
			continue
		}
		sess.Slot = i
		sess.Label = fmt.Sprintf("anon%d", sess.Seq)
		r.slots[i] = sess
		return i, nil
	}
	return -1, ErrServerFull
}

// Release closes the session's connection, closes its outbound queue to stop
// the writer goroutine, and frees the slot. Releasing a free or out-of-range
// slot is a no-op, so double release is safe.
func (r *Registry) Release(slot int) {
	if slot < 0 || slot >= len(r.slots) || r.slots[slot] == nil {
		return
	}
	sess := r.slots[slot]
	r.slots[slot] = nil
	if sess.Conn != nil {
		_ = sess.Conn.Close()
	}
	close(sess.Out)
	sess.Slot = -1
	sess.Label = ""
}

// Rename overwrites the label in place; allocation state is untouched.
func (r *Registry) Rename(slot int, label string) {
	if slot < 0 || slot >= len(r.slots) || r.slots[slot] == nil {
		return
	}
	r.slots[slot].Label = label
}

// ForEachActive visits occupied slots in ascending index order.
func (r *Registry) ForEachActive(fn func(*Session)) {
	for _, s := range r.slots {
		if s != nil {
			fn(s)
		}
	}
}
