// Package realtime is the websocket side of the messaging API: one live
// connection per authenticated session with a typed emit/subscribe
// surface over conversation events.
package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"sync"

	"github.com/gorilla/websocket"

	slogctx "github.com/veqryn/slog-context"
)

// Event names shared with the backend.
const (
	EventJoinConversation  = "conversation:join"
	EventLeaveConversation = "conversation:leave"
	EventMessageSend       = "message:send"
	EventMessageNew        = "message:new"
	EventTypingStart       = "typing:start"
	EventTypingStop        = "typing:stop"
	EventMarkRead          = "conversation:read"
	EventOnlineUsers       = "users:online"
)

// Frame is the wire format: a JSON object per websocket text message.
type Frame struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// Handler receives the raw data of one inbound frame.
type Handler func(data json.RawMessage)

type listener struct {
	id      int
	handler Handler
}

// Client owns at most one live websocket connection. Emit helpers are
// silent no-ops while disconnected: frames are dropped, not queued, so
// callers needing delivery guarantees must check Connected first.
// Registered listeners survive a reconnect.
type Client struct {
	mu        sync.Mutex
	conn      *websocket.Conn
	listeners map[string][]listener
	nextID    int
	done      chan struct{}
}

func NewClient() *Client {
	return &Client{
		listeners: make(map[string][]listener),
	}
}

// Connect dials the realtime endpoint carrying the auth token. It is
// idempotent: an already-connected client returns immediately.
func (c *Client) Connect(ctx context.Context, rawURL, token string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn != nil {
		return nil
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("parsing realtime URL: %w", err)
	}
	q := u.Query()
	q.Set("token", token)
	u.RawQuery = q.Encode()

	conn, resp, err := websocket.DefaultDialer.DialContext(ctx, u.String(), nil)
	if err != nil {
		return fmt.Errorf("dialing realtime endpoint: %w", err)
	}
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}

	c.conn = conn
	c.done = make(chan struct{})

	go c.readPump(ctx, conn, c.done)

	return nil
}

// Disconnect tears down the connection and clears the listener
// registry. Safe to call when already disconnected.
func (c *Client) Disconnect() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn != nil {
		close(c.done)
		_ = c.conn.Close()
		c.conn = nil
	}
	c.listeners = make(map[string][]listener)
}

func (c *Client) Connected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.conn != nil
}

// On registers a handler for an event and returns an ID for Off. The
// registry is client-side bookkeeping, not transport state, so handlers
// stay armed across reconnects.
func (c *Client) On(event string, handler Handler) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.nextID++
	c.listeners[event] = append(c.listeners[event], listener{id: c.nextID, handler: handler})

	return c.nextID
}

func (c *Client) Off(event string, id int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	kept := c.listeners[event][:0]
	for _, l := range c.listeners[event] {
		if l.id != id {
			kept = append(kept, l)
		}
	}
	if len(kept) == 0 {
		delete(c.listeners, event)
		return
	}
	c.listeners[event] = kept
}

func (c *Client) RemoveAllListeners() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.listeners = make(map[string][]listener)
}

type conversationRef struct {
	ConversationID string `json:"conversation_id"`
}

type outboundMessage struct {
	ConversationID string `json:"conversation_id"`
	Content        string `json:"content"`
}

func (c *Client) JoinConversation(conversationID string) {
	c.emit(EventJoinConversation, conversationRef{ConversationID: conversationID})
}

func (c *Client) LeaveConversation(conversationID string) {
	c.emit(EventLeaveConversation, conversationRef{ConversationID: conversationID})
}

func (c *Client) SendMessage(conversationID, content string) {
	c.emit(EventMessageSend, outboundMessage{ConversationID: conversationID, Content: content})
}

func (c *Client) StartTyping(conversationID string) {
	c.emit(EventTypingStart, conversationRef{ConversationID: conversationID})
}

func (c *Client) StopTyping(conversationID string) {
	c.emit(EventTypingStop, conversationRef{ConversationID: conversationID})
}

func (c *Client) MarkAsRead(conversationID string) {
	c.emit(EventMarkRead, conversationRef{ConversationID: conversationID})
}

func (c *Client) GetOnlineUsers() {
	c.emit(EventOnlineUsers, nil)
}

func (c *Client) emit(event string, data any) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn == nil {
		return
	}

	frame := Frame{Event: event}
	if data != nil {
		raw, err := json.Marshal(data)
		if err != nil {
			return
		}
		frame.Data = raw
	}

	// Write errors are swallowed like emits while disconnected; the
	// read pump notices the dead connection and clears it.
	_ = c.conn.WriteJSON(frame)
}

func (c *Client) readPump(ctx context.Context, conn *websocket.Conn, done chan struct{}) {
	for {
		var frame Frame
		if err := conn.ReadJSON(&frame); err != nil {
			select {
			case <-done:
			default:
				slogctx.Debug(ctx, "Realtime connection closed", "error", err)
				c.clearConn(conn)
			}

			return
		}

		c.dispatch(frame)
	}
}

func (c *Client) dispatch(frame Frame) {
	c.mu.Lock()
	handlers := make([]Handler, 0, len(c.listeners[frame.Event]))
	for _, l := range c.listeners[frame.Event] {
		handlers = append(handlers, l.handler)
	}
	c.mu.Unlock()

	for _, h := range handlers {
		h(frame.Data)
	}
}

// clearConn drops the connection state after a read failure so that a
// later Connect starts fresh. Listeners are kept.
func (c *Client) clearConn(conn *websocket.Conn) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn == conn {
		_ = c.conn.Close()
		c.conn = nil
	}
}
