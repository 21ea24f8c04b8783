package store

import (
	"time"

	"github.com/google/uuid"
)

// Session represents one authenticated browser session held in memory.
// The token is the opaque cookie value handed to the client.
type Session struct {
	Token     string    `json:"token"`
	UserID    uuid.UUID `json:"user_id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
}
