package realtime

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/focusboard/focusboard-api/internal/core/domain"
)

type stubVerifier map[string]domain.Identity

func (s stubVerifier) Verify(token string) (domain.Identity, error) {
	if token == "expired" {
		return domain.Identity{}, domain.ErrTokenExpired
	}
	id, ok := s[token]
	if !ok {
		return domain.Identity{}, domain.ErrTokenMalformed
	}
	return id, nil
}

type wsFixture struct {
	hub        *Hub
	dispatcher *Dispatcher
	url        string
}

func newWSFixture(t *testing.T) *wsFixture {
	t.Helper()
	hub := NewHub(zerolog.Nop())
	verifier := stubVerifier{
		"alice-token": {ID: 1, Username: "alice"},
		"bob-token":   {ID: 2, Username: "bob"},
	}
	h := NewHandler(hub, verifier, Options{SendBuffer: 8}, zerolog.Nop())

	e := echo.New()
	e.GET("/ws", h.ServeWS)
	srv := httptest.NewServer(e)
	t.Cleanup(srv.Close)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	d := NewDispatcher(hub, 2, 16, zerolog.Nop())
	d.Start(ctx)

	return &wsFixture{hub: hub, dispatcher: d, url: "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"}
}

func (f *wsFixture) dial(t *testing.T) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial(f.url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

type frame struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

func send(t *testing.T, conn *websocket.Conn, event string, data any) {
	t.Helper()
	require.NoError(t, conn.WriteJSON(map[string]any{"event": event, "data": data}))
}

func read(t *testing.T, conn *websocket.Conn) frame {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var f frame
	require.NoError(t, conn.ReadJSON(&f))
	return f
}

func (f *wsFixture) waitRoom(t *testing.T, room string, size int) {
	t.Helper()
	require.Eventually(t, func() bool { return f.hub.RoomSize(room) == size },
		2*time.Second, 10*time.Millisecond)
}

func TestHandler_AuthenticateJoinsUserRoom(t *testing.T) {
	f := newWSFixture(t)
	conn := f.dial(t)

	send(t, conn, EventAuthenticate, "alice-token")

	got := read(t, conn)
	assert.Equal(t, EventAuthenticated, got.Event)
	assert.JSONEq(t, `{"ok":true}`, string(got.Data))
	f.waitRoom(t, RoomName(1), 1)
}

func TestHandler_AuthErrorKeepsSocketOpen(t *testing.T) {
	f := newWSFixture(t)
	conn := f.dial(t)

	send(t, conn, EventAuthenticate, "garbage")
	got := read(t, conn)
	assert.Equal(t, EventAuthError, got.Event)
	assert.JSONEq(t, `{"error":"invalid token"}`, string(got.Data))

	send(t, conn, EventAuthenticate, "expired")
	got = read(t, conn)
	assert.Equal(t, EventAuthError, got.Event)
	assert.JSONEq(t, `{"error":"token expired"}`, string(got.Data))

	send(t, conn, EventAuthenticate, "")
	got = read(t, conn)
	assert.Equal(t, EventAuthError, got.Event)

	// Same connection can retry and succeed.
	send(t, conn, EventAuthenticate, map[string]string{"token": "bob-token"})
	got = read(t, conn)
	assert.Equal(t, EventAuthenticated, got.Event)
	f.waitRoom(t, RoomName(2), 1)
}

func TestHandler_UnknownEventAndBadFrame(t *testing.T) {
	f := newWSFixture(t)
	conn := f.dial(t)

	send(t, conn, "subscribe", nil)
	got := read(t, conn)
	assert.Equal(t, EventError, got.Event)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("not json")))
	got = read(t, conn)
	assert.Equal(t, EventError, got.Event)
	assert.JSONEq(t, `{"error":"invalid message"}`, string(got.Data))
}

func TestHandler_EventsReachOnlyTheActingUser(t *testing.T) {
	f := newWSFixture(t)
	alice, bob, anon := f.dial(t), f.dial(t), f.dial(t)

	send(t, alice, EventAuthenticate, "alice-token")
	require.Equal(t, EventAuthenticated, read(t, alice).Event)
	send(t, bob, EventAuthenticate, "bob-token")
	require.Equal(t, EventAuthenticated, read(t, bob).Event)
	f.waitRoom(t, RoomName(1), 1)
	f.waitRoom(t, RoomName(2), 1)

	f.dispatcher.Publish(context.Background(), 1, domain.Event{
		Type: domain.EventCreated, Entity: domain.EntityTask,
		Payload: &domain.Task{ID: 5, UserID: 1, Title: "write tests"},
	})

	got := read(t, alice)
	assert.Equal(t, "task_created", got.Event)
	var task domain.Task
	require.NoError(t, json.Unmarshal(got.Data, &task))
	assert.Equal(t, "write tests", task.Title)

	for _, other := range []*websocket.Conn{bob, anon} {
		require.NoError(t, other.SetReadDeadline(time.Now().Add(150*time.Millisecond)))
		_, _, err := other.ReadMessage()
		assert.Error(t, err, "no frame expected for other sockets")
	}
}

func TestHandler_CloseReleasesMembership(t *testing.T) {
	f := newWSFixture(t)
	conn := f.dial(t)

	send(t, conn, EventAuthenticate, "alice-token")
	require.Equal(t, EventAuthenticated, read(t, conn).Event)
	f.waitRoom(t, RoomName(1), 1)

	require.NoError(t, conn.Close())
	f.waitRoom(t, RoomName(1), 0)
}

func TestOriginChecker(t *testing.T) {
	check := originChecker([]string{"https://app.example.com"})

	r := httptest.NewRequest("GET", "/ws", nil)
	r.Header.Set("Origin", "https://evil.example.com")
	assert.False(t, check(r))

	r.Header.Set("Origin", "https://app.example.com")
	assert.True(t, check(r))

	assert.True(t, originChecker([]string{"*"})(r))
}
