package app

import (
	"encoding/json"
	"errors"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// Wire events on the realtime channel. Outbound events scope the connection
// to a room; inbound events carry room-scoped deltas.
const (
	eventJoinRoom          = "joinRoom"
	eventLeaveRoom         = "leaveRoom"
	eventNewMessage        = "newMessage"
	eventParticipantUpdate = "participantUpdate"
	eventError             = "error"
)

// errConnection is the only error string the realtime layer ever surfaces.
const errConnection = "Connection error"

type envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// RoomHandlers receive inbound deltas for the subscribed room.
type RoomHandlers struct {
	OnMessage      func(Message)
	OnParticipants func([]ChatParticipant)
}

// RoomSubscription is a live subscription to one chat room. Closing it
// emits leaveRoom and detaches the handlers.
type RoomSubscription interface {
	ChatID() string
	Close() error
}

type roomSubscription struct {
	chatID  string
	manager *ChannelManager
}

func (s *roomSubscription) ChatID() string { return s.chatID }

func (s *roomSubscription) Close() error { return s.manager.unsubscribe(s) }

// ChannelManager owns the single realtime connection of an authenticated
// session. It is connected when the session authenticates and closed on
// logout or teardown; closing is the sole cancellation path. At most one
// room subscription is live at a time, and the previous one is always torn
// down (leaveRoom + handler removal) before the next joinRoom goes out.
type ChannelManager struct {
	url      string
	logger   *Logger
	clientID string

	mu       sync.Mutex
	conn     *websocket.Conn
	done     chan struct{}
	sub      *roomSubscription
	handlers RoomHandlers
	onError  func(reason string)
}

func NewChannelManager(url string, logger *Logger) *ChannelManager {
	return &ChannelManager{
		url:      url,
		logger:   logger,
		clientID: uuid.NewString(),
	}
}

// SetErrorHandler registers the sink for transport-level errors. The sink
// only ever receives the generic connection error string.
func (m *ChannelManager) SetErrorHandler(fn func(reason string)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onError = fn
}

// Connect dials the realtime endpoint, presenting the bearer credential as
// connection-time auth. Connecting twice is a no-op.
func (m *ChannelManager) Connect(token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.conn != nil {
		return nil
	}

	header := http.Header{}
	if token != "" {
		header.Set("Authorization", "Bearer "+token)
	}
	header.Set("X-Client-ID", m.clientID)

	conn, _, err := websocket.DefaultDialer.Dial(m.url, header)
	if err != nil {
		return err
	}

	m.conn = conn
	m.done = make(chan struct{})
	go m.readLoop(conn, m.done)

	m.logger.Info("socket connected", map[string]interface{}{"url": m.url})
	return nil
}

func (m *ChannelManager) Connected() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.conn != nil
}

// Close tears down the active subscription and the connection. No events
// are processed after Close returns.
func (m *ChannelManager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.conn == nil {
		return nil
	}

	m.teardownLocked()
	close(m.done)
	err := m.conn.Close()
	m.conn = nil
	m.done = nil

	m.logger.Info("socket disconnected", nil)
	return err
}

// Subscribe joins the chat's room. Any previous subscription is torn down
// first so handlers never accumulate across chat switches.
func (m *ChannelManager) Subscribe(chatID string, h RoomHandlers) (RoomSubscription, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.conn == nil {
		return nil, errors.New("realtime channel not connected")
	}

	m.teardownLocked()

	if err := m.writeEventLocked(eventJoinRoom, chatID); err != nil {
		return nil, err
	}
	sub := &roomSubscription{chatID: chatID, manager: m}
	m.sub = sub
	m.handlers = h

	m.logger.Info("joined room", map[string]interface{}{"chat_id": chatID})
	return sub, nil
}

func (m *ChannelManager) unsubscribe(sub *roomSubscription) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.sub != sub {
		return nil
	}
	err := m.writeEventLocked(eventLeaveRoom, sub.chatID)
	m.sub = nil
	m.handlers = RoomHandlers{}
	return err
}

// teardownLocked removes the current subscription, emitting leaveRoom on a
// best-effort basis. Callers hold m.mu.
func (m *ChannelManager) teardownLocked() {
	if m.sub == nil {
		return
	}
	if err := m.writeEventLocked(eventLeaveRoom, m.sub.chatID); err != nil {
		m.logger.Error("leave room failed", map[string]interface{}{"chat_id": m.sub.chatID, "error": err.Error()})
	}
	m.sub = nil
	m.handlers = RoomHandlers{}
}

func (m *ChannelManager) writeEventLocked(event string, data interface{}) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return m.conn.WriteJSON(envelope{Event: event, Data: payload})
}

func (m *ChannelManager) readLoop(conn *websocket.Conn, done chan struct{}) {
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			select {
			case <-done:
				// Deliberate close; stay quiet.
			default:
				if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
					m.logger.Error("socket read failed", map[string]interface{}{"error": err.Error()})
					m.reportError()
				}
			}
			return
		}

		var env envelope
		if err := json.Unmarshal(data, &env); err != nil {
			m.logger.Error("bad socket frame", map[string]interface{}{"error": err.Error()})
			continue
		}
		m.dispatch(env)
	}
}

func (m *ChannelManager) dispatch(env envelope) {
	switch env.Event {
	case eventNewMessage:
		var msg Message
		if err := json.Unmarshal(env.Data, &msg); err != nil {
			m.logger.Error("bad newMessage payload", map[string]interface{}{"error": err.Error()})
			return
		}
		m.mu.Lock()
		handler := m.handlers.OnMessage
		subscribed := m.sub != nil && m.sub.chatID == msg.ChatID
		m.mu.Unlock()
		if subscribed && handler != nil {
			handler(msg)
		}
	case eventParticipantUpdate:
		var participants []ChatParticipant
		if err := json.Unmarshal(env.Data, &participants); err != nil {
			m.logger.Error("bad participantUpdate payload", map[string]interface{}{"error": err.Error()})
			return
		}
		m.mu.Lock()
		handler := m.handlers.OnParticipants
		subscribed := m.sub != nil
		m.mu.Unlock()
		if subscribed && handler != nil {
			handler(participants)
		}
	case eventError:
		m.logger.Error("socket error event", map[string]interface{}{"data": string(env.Data)})
		m.reportError()
	default:
		m.logger.Debug("unknown socket event", map[string]interface{}{"event": env.Event})
	}
}

// reportError surfaces a generic connection error without closing the
// connection; the transport governs its own recovery.
func (m *ChannelManager) reportError() {
	m.mu.Lock()
	fn := m.onError
	m.mu.Unlock()
	if fn != nil {
		fn(errConnection)
	}
}
