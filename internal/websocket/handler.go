package websocket

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

var errUnexpectedFrame = errors.New("expected authenticate frame")

// authWait bounds how long a fresh connection may sit unauthenticated.
const authWait = 10 * time.Second

// TicketVerifier resolves a signed push ticket to the user it was minted for.
type TicketVerifier func(ticket string) (uuid.UUID, error)

// ServeWs runs the authenticate handshake and then binds the connection to
// the hub. The first client frame must carry a valid push ticket; anything
// else closes the connection before it ever joins the hub.
func ServeWs(hub *Hub, c *websocket.Conn, verify TicketVerifier) {
	userID, err := awaitAuthentication(c, verify)
	if err != nil {
		hub.logger.Warn("Hub", "Handshake rejected", map[string]interface{}{"error": err.Error()})
		c.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.ClosePolicyViolation, "unauthorized"))
		c.Close()
		return
	}

	client := &Client{Hub: hub, Conn: c, UserID: userID, Send: make(chan []byte, 256)}
	client.Hub.register <- client

	go client.writePump()
	client.readPump()
}

func awaitAuthentication(c *websocket.Conn, verify TicketVerifier) (uuid.UUID, error) {
	c.SetReadDeadline(time.Now().Add(authWait))
	defer c.SetReadDeadline(time.Time{})

	_, raw, err := c.ReadMessage()
	if err != nil {
		return uuid.Nil, err
	}

	var frame struct {
		Type   string `json:"type"`
		Ticket string `json:"ticket"`
	}
	if err := json.Unmarshal(raw, &frame); err != nil {
		return uuid.Nil, err
	}
	if frame.Type != "authenticate" {
		return uuid.Nil, errUnexpectedFrame
	}

	return verify(frame.Ticket)
}
