package chat

import (
	"io"
	"log/slog"
	"net"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRegistry_AllocateAssignsFirstFreeSlot(t *testing.T) {
	req := require.New(t)
	reg := NewRegistry(3)

	for want := 0; want < 3; want++ {
		sess := pipeSession(t, uint64(want+1), 4)
		slot, err := reg.Allocate(sess)
		req.NoError(err)
		req.Equal(want, slot)
		req.Equal(want, sess.Slot)
	}
	req.Equal(3, reg.Len())

	extra := pipeSession(t, 4, 4)
	_, err := reg.Allocate(extra)
	req.ErrorIs(err, ErrServerFull)
	req.Equal(3, reg.Len())
	req.Equal(-1, extra.Slot)
}

func TestRegistry_DefaultLabelFromSequence(t *testing.T) {
	req := require.New(t)
	reg := NewRegistry(2)

	sess := pipeSession(t, 7, 4)
	_, err := reg.Allocate(sess)
	req.NoError(err)
	req.Equal("anon7", sess.Label)
}

func TestRegistry_ReleaseFreesSlotForImmediateReuse(t *testing.T) {
	req := require.New(t)
	reg := NewRegistry(2)

	first := pipeSession(t, 1, 4)
	second := pipeSession(t, 2, 4)
	_, err := reg.Allocate(first)
	req.NoError(err)
	_, err = reg.Allocate(second)
	req.NoError(err)

	reg.Release(0)
	req.Equal(1, reg.Len())
	req.Equal(-1, first.Slot)
	req.Empty(first.Label)

	// double release must be a no-op
	reg.Release(0)
	req.Equal(1, reg.Len())

	third := pipeSession(t, 3, 4)
	slot, err := reg.Allocate(third)
	req.NoError(err)
	req.Equal(0, slot)
}

func TestRegistry_RenameKeepsAllocation(t *testing.T) {
	req := require.New(t)
	reg := NewRegistry(2)

	sess := pipeSession(t, 1, 4)
	slot, err := reg.Allocate(sess)
	req.NoError(err)

	reg.Rename(slot, "alice")
	req.Equal("alice", sess.Label)
	req.Equal(slot, sess.Slot)
	req.Equal(1, reg.Len())

	// renaming a free slot does nothing
	reg.Rename(1, "ghost")
	req.Equal(1, reg.Len())
}

func TestRegistry_ForEachActiveAscendingSlotOrder(t *testing.T) {
	req := require.New(t)
	reg := NewRegistry(4)

	for seq := uint64(1); seq <= 3; seq++ {
		_, err := reg.Allocate(pipeSession(t, seq, 4))
		req.NoError(err)
	}
	reg.Release(1)

	var slots []int
	reg.ForEachActive(func(s *Session) {
		slots = append(slots, s.Slot)
	})
	req.Equal([]int{0, 2}, slots)
}

func pipeSession(t *testing.T, seq uint64, queue int) *Session {
	t.Helper()
	local, remote := net.Pipe()
	t.Cleanup(func() {
		local.Close()
		remote.Close()
	})
	return newSession(local, seq, queue)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
