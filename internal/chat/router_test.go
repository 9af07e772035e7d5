package chat

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRouter_BroadcastFramesAndExcludesOrigin(t *testing.T) {
	req := require.New(t)
	reg := NewRegistry(4)
	router := NewRouter(reg, discardLogger())

	origin := pipeSession(t, 1, 4)
	peerA := pipeSession(t, 2, 4)
	peerB := pipeSession(t, 3, 4)
	for _, s := range []*Session{origin, peerA, peerB} {
		_, err := reg.Allocate(s)
		req.NoError(err)
	}

	router.Broadcast("alice", "hello", origin)

	req.Empty(origin.Out)
	req.Equal("[alice] hello", <-peerA.Out)
	req.Equal("[alice] hello", <-peerB.Out)
}

func TestRouter_AdministrativeBroadcastReachesEveryone(t *testing.T) {
	req := require.New(t)
	reg := NewRegistry(4)
	router := NewRouter(reg, discardLogger())

	peers := []*Session{pipeSession(t, 1, 4), pipeSession(t, 2, 4)}
	for _, s := range peers {
		_, err := reg.Allocate(s)
		req.NoError(err)
	}

	router.Broadcast(ServerLabel, "ping", nil)

	for _, s := range peers {
		req.Equal("[server] ping", <-s.Out)
	}
}

func TestRouter_OverflowDisconnectsSlowRecipient(t *testing.T) {
	req := require.New(t)
	reg := NewRegistry(4)
	router := NewRouter(reg, discardLogger())

	fast := pipeSession(t, 1, 4)
	slow := pipeSession(t, 2, 1)
	_, err := reg.Allocate(fast)
	req.NoError(err)
	_, err = reg.Allocate(slow)
	req.NoError(err)

	req.True(slow.enqueue("backlog")) // queue now full

	router.Broadcast(ServerLabel, "ping", nil)

	// the slow session lost its slot; the fast one still got the message
	req.Equal(1, reg.Len())
	req.Equal(-1, slow.Slot)
	req.Equal("[server] ping", <-fast.Out)

	// the dropped session never saw the overflowing message
	req.Equal("backlog", <-slow.Out)
	_, open := <-slow.Out
	req.False(open)
}
