package realtime_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jobwire/jobwire-go/pkg/jobwire/realtime"
)

// wsServer upgrades inbound connections, records received frames, and
// lets tests push frames to the connected client.
type wsServer struct {
	upgrader websocket.Upgrader

	mu       sync.Mutex
	conn     *websocket.Conn
	received []realtime.Frame
	tokens   []string
	dials    int
}

func (s *wsServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}

	s.mu.Lock()
	s.conn = conn
	s.tokens = append(s.tokens, r.URL.Query().Get("token"))
	s.dials++
	s.mu.Unlock()

	for {
		var frame realtime.Frame
		if err := conn.ReadJSON(&frame); err != nil {
			return
		}
		s.mu.Lock()
		s.received = append(s.received, frame)
		s.mu.Unlock()
	}
}

func (s *wsServer) push(t *testing.T, frame realtime.Frame) {
	t.Helper()

	s.mu.Lock()
	conn := s.conn
	s.mu.Unlock()
	require.NotNil(t, conn, "no client connected")
	require.NoError(t, conn.WriteJSON(frame))
}

func (s *wsServer) frames() []realtime.Frame {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]realtime.Frame(nil), s.received...)
}

func (s *wsServer) dialCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.dials
}

func wsURL(ts *httptest.Server) string {
	return "ws" + strings.TrimPrefix(ts.URL, "http")
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("condition not met in time")
}

func TestClient_Connect(t *testing.T) {
	ctx := t.Context()

	t.Run("dials with the token as a query parameter", func(t *testing.T) {
		srv := &wsServer{}
		ts := httptest.NewServer(srv)
		defer ts.Close()

		client := realtime.NewClient()
		defer client.Disconnect()

		require.NoError(t, client.Connect(ctx, wsURL(ts), "tok-123"))
		assert.True(t, client.Connected())

		srv.mu.Lock()
		defer srv.mu.Unlock()
		require.Len(t, srv.tokens, 1)
		assert.Equal(t, "tok-123", srv.tokens[0])
	})

	t.Run("is idempotent while connected", func(t *testing.T) {
		srv := &wsServer{}
		ts := httptest.NewServer(srv)
		defer ts.Close()

		client := realtime.NewClient()
		defer client.Disconnect()

		require.NoError(t, client.Connect(ctx, wsURL(ts), "tok"))
		require.NoError(t, client.Connect(ctx, wsURL(ts), "tok"))
		require.NoError(t, client.Connect(ctx, wsURL(ts), "tok"))

		assert.Equal(t, 1, srv.dialCount())
	})

	t.Run("an unreachable endpoint errors", func(t *testing.T) {
		ts := httptest.NewServer(&wsServer{})
		ts.Close()

		client := realtime.NewClient()

		err := client.Connect(ctx, wsURL(ts), "tok")
		require.Error(t, err)
		assert.False(t, client.Connected())
	})
}

func TestClient_Emit(t *testing.T) {
	ctx := t.Context()

	t.Run("emitting while disconnected is a silent no-op", func(t *testing.T) {
		client := realtime.NewClient()

		assert.NotPanics(t, func() {
			client.SendMessage("c1", "hello")
			client.JoinConversation("c1")
			client.StartTyping("c1")
			client.GetOnlineUsers()
		})
	})

	t.Run("frames carry the event name and a JSON payload", func(t *testing.T) {
		srv := &wsServer{}
		ts := httptest.NewServer(srv)
		defer ts.Close()

		client := realtime.NewClient()
		defer client.Disconnect()
		require.NoError(t, client.Connect(ctx, wsURL(ts), "tok"))

		client.JoinConversation("c1")
		client.SendMessage("c1", "hello there")
		client.MarkAsRead("c1")

		waitFor(t, func() bool { return len(srv.frames()) == 3 })

		frames := srv.frames()
		assert.Equal(t, realtime.EventJoinConversation, frames[0].Event)
		assert.JSONEq(t, `{"conversation_id":"c1"}`, string(frames[0].Data))
		assert.Equal(t, realtime.EventMessageSend, frames[1].Event)
		assert.JSONEq(t, `{"conversation_id":"c1","content":"hello there"}`, string(frames[1].Data))
		assert.Equal(t, realtime.EventMarkRead, frames[2].Event)
	})
}

func TestClient_Listeners(t *testing.T) {
	ctx := t.Context()

	t.Run("inbound frames reach every registered handler", func(t *testing.T) {
		srv := &wsServer{}
		ts := httptest.NewServer(srv)
		defer ts.Close()

		client := realtime.NewClient()
		defer client.Disconnect()

		var mu sync.Mutex
		var got []string
		client.On(realtime.EventMessageNew, func(data json.RawMessage) {
			mu.Lock()
			got = append(got, "first:"+string(data))
			mu.Unlock()
		})
		client.On(realtime.EventMessageNew, func(data json.RawMessage) {
			mu.Lock()
			got = append(got, "second:"+string(data))
			mu.Unlock()
		})

		require.NoError(t, client.Connect(ctx, wsURL(ts), "tok"))
		srv.push(t, realtime.Frame{Event: realtime.EventMessageNew, Data: json.RawMessage(`{"id":"m1"}`)})

		waitFor(t, func() bool {
			mu.Lock()
			defer mu.Unlock()
			return len(got) == 2
		})

		mu.Lock()
		defer mu.Unlock()
		assert.Equal(t, []string{`first:{"id":"m1"}`, `second:{"id":"m1"}`}, got)
	})

	t.Run("Off removes only the targeted handler", func(t *testing.T) {
		srv := &wsServer{}
		ts := httptest.NewServer(srv)
		defer ts.Close()

		client := realtime.NewClient()
		defer client.Disconnect()

		var mu sync.Mutex
		var got []string
		removed := client.On(realtime.EventMessageNew, func(json.RawMessage) {
			mu.Lock()
			got = append(got, "removed")
			mu.Unlock()
		})
		client.On(realtime.EventMessageNew, func(json.RawMessage) {
			mu.Lock()
			got = append(got, "kept")
			mu.Unlock()
		})
		client.Off(realtime.EventMessageNew, removed)

		require.NoError(t, client.Connect(ctx, wsURL(ts), "tok"))
		srv.push(t, realtime.Frame{Event: realtime.EventMessageNew})

		waitFor(t, func() bool {
			mu.Lock()
			defer mu.Unlock()
			return len(got) == 1
		})

		mu.Lock()
		defer mu.Unlock()
		assert.Equal(t, []string{"kept"}, got)
	})

	t.Run("a frame without listeners is dropped quietly", func(t *testing.T) {
		srv := &wsServer{}
		ts := httptest.NewServer(srv)
		defer ts.Close()

		client := realtime.NewClient()
		defer client.Disconnect()
		require.NoError(t, client.Connect(ctx, wsURL(ts), "tok"))

		srv.push(t, realtime.Frame{Event: realtime.EventOnlineUsers})
		srv.push(t, realtime.Frame{Event: realtime.EventTypingStart})

		// The connection must still be alive afterwards.
		time.Sleep(50 * time.Millisecond)
		assert.True(t, client.Connected())
	})
}

func TestClient_Disconnect(t *testing.T) {
	ctx := t.Context()

	t.Run("clears the connection and the listener registry", func(t *testing.T) {
		srv := &wsServer{}
		ts := httptest.NewServer(srv)
		defer ts.Close()

		client := realtime.NewClient()
		require.NoError(t, client.Connect(ctx, wsURL(ts), "tok"))

		var fired bool
		client.On(realtime.EventMessageNew, func(json.RawMessage) { fired = true })

		client.Disconnect()
		assert.False(t, client.Connected())

		// Reconnect: the old handler must be gone.
		require.NoError(t, client.Connect(ctx, wsURL(ts), "tok"))
		defer client.Disconnect()
		srv.push(t, realtime.Frame{Event: realtime.EventMessageNew})

		time.Sleep(50 * time.Millisecond)
		assert.False(t, fired)
	})

	t.Run("is safe while disconnected", func(t *testing.T) {
		client := realtime.NewClient()

		assert.NotPanics(t, func() {
			client.Disconnect()
			client.Disconnect()
		})
	})

	t.Run("listeners survive a dropped connection", func(t *testing.T) {
		srv := &wsServer{}
		ts := httptest.NewServer(srv)
		defer ts.Close()

		client := realtime.NewClient()
		defer client.Disconnect()

		var mu sync.Mutex
		var count int
		client.On(realtime.EventMessageNew, func(json.RawMessage) {
			mu.Lock()
			count++
			mu.Unlock()
		})

		require.NoError(t, client.Connect(ctx, wsURL(ts), "tok"))

		// Server-side close drops the connection without Disconnect.
		srv.mu.Lock()
		conn := srv.conn
		srv.mu.Unlock()
		require.NoError(t, conn.Close())

		waitFor(t, func() bool { return !client.Connected() })

		require.NoError(t, client.Connect(ctx, wsURL(ts), "tok"))
		srv.push(t, realtime.Frame{Event: realtime.EventMessageNew})

		waitFor(t, func() bool {
			mu.Lock()
			defer mu.Unlock()
			return count == 1
		})
	})
}
