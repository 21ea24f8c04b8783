package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"notesync/pkg/view"
)

// PushHandler consumes one decoded push event. State.ApplyPush satisfies it.
type PushHandler func(event string, data json.RawMessage) error

// PushListener keeps one websocket open to the server's push channel and
// feeds every event to the handler. Pushes are a latency optimization, so a
// dropped connection is not fatal; the caller decides whether to reconnect.
type PushListener struct {
	mu   sync.Mutex
	conn *websocket.Conn

	handler PushHandler
	onError func(error)
}

func NewPushListener(handler PushHandler, onError func(error)) *PushListener {
	if onError == nil {
		onError = func(error) {}
	}
	return &PushListener{
		handler: handler,
		onError: onError,
	}
}

// Connect dials the push endpoint, runs the authenticate handshake with the
// given ticket, and starts the read loop. baseURL is the server's HTTP base;
// the scheme is rewritten for the websocket dial.
func (l *PushListener) Connect(ctx context.Context, baseURL, ticket string, jar http.CookieJar) error {
	wsURL := strings.Replace(baseURL, "http", "ws", 1) + "/api/ws"

	dialer := websocket.Dialer{
		HandshakeTimeout: 10 * time.Second,
		Jar:              jar,
	}
	conn, _, err := dialer.DialContext(ctx, wsURL, nil)
	if err != nil {
		return fmt.Errorf("push dial: %w", err)
	}

	frame := view.AuthenticateFrame{Type: "authenticate", Ticket: ticket}
	if err := conn.WriteJSON(frame); err != nil {
		conn.Close()
		return fmt.Errorf("push handshake: %w", err)
	}

	l.mu.Lock()
	l.conn = conn
	l.mu.Unlock()

	go l.readLoop(conn)
	return nil
}

func (l *PushListener) readLoop(conn *websocket.Conn) {
	defer conn.Close()

	conn.SetPingHandler(func(appData string) error {
		deadline := time.Now().Add(10 * time.Second)
		return conn.WriteControl(websocket.PongMessage, []byte(appData), deadline)
	})

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				l.onError(err)
			}
			return
		}

		var envelope struct {
			Event string          `json:"event"`
			Data  json.RawMessage `json:"data"`
		}
		if err := json.Unmarshal(raw, &envelope); err != nil {
			l.onError(fmt.Errorf("push decode: %w", err))
			continue
		}

		if err := l.handler(envelope.Event, envelope.Data); err != nil {
			l.onError(err)
		}
	}
}

// Close shuts the connection down; the read loop exits on its own.
func (l *PushListener) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.conn != nil {
		l.conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(time.Second))
		l.conn.Close()
		l.conn = nil
	}
}
