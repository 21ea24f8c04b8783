package entity

import (
	"time"

	"github.com/google/uuid"
)

// ActivityEvent is one persisted row of the per-user activity feed,
// written by the activity worker from the NATS stream.
type ActivityEvent struct {
	Id        uuid.UUID
	UserId    uuid.UUID
	TypeCode  string
	Metadata  map[string]interface{}
	CreatedAt time.Time
}
