package realtime

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// detachedClient builds a client with no connection, for hub-level tests.
func detachedClient(buffer int) *Client {
	return newClient(nil, buffer, zerolog.Nop())
}

func TestRoomName(t *testing.T) {
	assert.Equal(t, "user-42", RoomName(42))
}

func TestHub_BroadcastReachesOnlyRoomMembers(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	alice, bob, anon := detachedClient(4), detachedClient(4), detachedClient(4)
	for _, c := range []*Client{alice, bob, anon} {
		hub.Register(c)
	}
	hub.Join(alice, RoomName(1))
	hub.Join(bob, RoomName(2))

	n := hub.Broadcast(RoomName(1), []byte(`{"event":"task_created"}`))

	assert.Equal(t, 1, n)
	require.Len(t, alice.send, 1)
	assert.Empty(t, bob.send)
	assert.Empty(t, anon.send)
}

func TestHub_JoinMovesClientBetweenRooms(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	c := detachedClient(4)
	hub.Register(c)

	hub.Join(c, RoomName(1))
	hub.Join(c, RoomName(2))

	assert.Equal(t, 0, hub.RoomSize(RoomName(1)))
	assert.Equal(t, 1, hub.RoomSize(RoomName(2)))
	assert.Equal(t, RoomName(2), hub.RoomOf(c))
}

func TestHub_UnregisterReleasesMembership(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	c1, c2 := detachedClient(4), detachedClient(4)
	hub.Register(c1)
	hub.Register(c2)
	hub.Join(c1, RoomName(7))
	hub.Join(c2, RoomName(7))

	hub.Unregister(c1)
	hub.Unregister(c1)

	assert.Equal(t, 1, hub.RoomSize(RoomName(7)))
	assert.Equal(t, "", hub.RoomOf(c1))
	assert.Equal(t, 1, hub.Broadcast(RoomName(7), []byte("x")))
}

func TestHub_JoinIgnoresUnregisteredClient(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	c := detachedClient(4)

	hub.Join(c, RoomName(1))

	assert.Equal(t, 0, hub.RoomSize(RoomName(1)))
}

func TestHub_FullSendBufferDropsForThatClientOnly(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	slow, fast := detachedClient(1), detachedClient(4)
	hub.Register(slow)
	hub.Register(fast)
	hub.Join(slow, RoomName(3))
	hub.Join(fast, RoomName(3))

	assert.Equal(t, 2, hub.Broadcast(RoomName(3), []byte("one")))
	assert.Equal(t, 1, hub.Broadcast(RoomName(3), []byte("two")))

	assert.Len(t, slow.send, 1)
	assert.Len(t, fast.send, 2)
}
